package flow

import (
	"context"

	"go.uber.org/zap"

	"smartpark/internal/domain"
	"smartpark/internal/service"
	"smartpark/internal/store"
)

// ParkingFlow drives the parking slice through the facade.
type ParkingFlow struct {
	store   *store.Store
	parking service.ParkingAPI
	logger  *zap.Logger
}

// NewParkingFlow wires the flow against any ParkingAPI implementation.
func NewParkingFlow(st *store.Store, parking service.ParkingAPI, logger *zap.Logger) *ParkingFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParkingFlow{store: st, parking: parking, logger: logger}
}

// FetchLots loads all lots into the store.
func (f *ParkingFlow) FetchLots(ctx context.Context) error {
	f.store.Dispatch(store.LotsRequested{})

	lots, err := f.parking.Lots(ctx)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.LotsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.LotsLoaded{Lots: lots})
	return nil
}

// FetchSlots loads the slot list for a lot into the store.
func (f *ParkingFlow) FetchSlots(ctx context.Context, lotID string, filter domain.SlotFilter) error {
	f.store.Dispatch(store.SlotsRequested{})

	slots, err := f.parking.Slots(ctx, lotID, filter)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.SlotsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.SlotsLoaded{Slots: slots})
	return nil
}

// FetchSlotStatus refreshes one slot's status in the real-time map.
func (f *ParkingFlow) FetchSlotStatus(ctx context.Context, slotID string) error {
	status, err := f.parking.SlotStatus(ctx, slotID)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.SlotsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.SlotStatusLoaded{SlotID: slotID, Status: status})
	return nil
}

// UpdateSlotStatus pushes a status change through the facade and merges
// the result.
func (f *ParkingFlow) UpdateSlotStatus(ctx context.Context, slotID string, status domain.SlotStatus) error {
	slot, err := f.parking.UpdateSlotStatus(ctx, slotID, status)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.SlotUpdateFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.SlotUpdated{Slot: slot})
	return nil
}

// FetchOccupancy bulk-merges a lot's status map into the store.
func (f *ParkingFlow) FetchOccupancy(ctx context.Context, lotID string) error {
	occupancy, err := f.parking.Occupancy(ctx, lotID)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.SlotsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.BulkUpdateSlots{Statuses: occupancy})
	return nil
}
