package service

import (
	"context"
	"fmt"
	"net/url"

	"smartpark/internal/api"
	"smartpark/internal/domain"
)

// RemoteParkingService serves the ParkingAPI contract over the HTTP
// request facade instead of the in-memory tables. Selected when an API
// base URL is configured.
type RemoteParkingService struct {
	client *api.Client
}

var _ ParkingAPI = (*RemoteParkingService)(nil)

// NewRemoteParkingService wraps the request facade.
func NewRemoteParkingService(client *api.Client) *RemoteParkingService {
	return &RemoteParkingService{client: client}
}

// Lots fetches all parking lots.
func (s *RemoteParkingService) Lots(ctx context.Context) ([]domain.ParkingLot, error) {
	var lots []domain.ParkingLot
	if err := s.client.GetJSON(ctx, "/parking/lots", &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

// Lot fetches a single lot.
func (s *RemoteParkingService) Lot(ctx context.Context, id string) (domain.ParkingLot, error) {
	var lot domain.ParkingLot
	if err := s.client.GetJSON(ctx, "/parking/lots/"+url.PathEscape(id), &lot); err != nil {
		return domain.ParkingLot{}, err
	}
	return lot, nil
}

// Slots fetches slots with the filter encoded as query parameters.
func (s *RemoteParkingService) Slots(ctx context.Context, lotID string, filter domain.SlotFilter) ([]domain.ParkingSlot, error) {
	params := url.Values{}
	if lotID != "" {
		params.Set("lotId", lotID)
	}
	if filter.VehicleType != "" {
		params.Set("vehicleType", string(filter.VehicleType))
	}
	if filter.Section != "" {
		params.Set("section", filter.Section)
	}
	if filter.FloorLevel != nil {
		params.Set("floorLevel", fmt.Sprintf("%d", *filter.FloorLevel))
	}
	if filter.IsAccessible != nil {
		params.Set("isAccessible", fmt.Sprintf("%t", *filter.IsAccessible))
	}
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}

	path := "/parking/slots"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var slots []domain.ParkingSlot
	if err := s.client.GetJSON(ctx, path, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SlotStatus fetches one slot's current status.
func (s *RemoteParkingService) SlotStatus(ctx context.Context, slotID string) (domain.SlotStatus, error) {
	var resp struct {
		Status domain.SlotStatus `json:"status"`
	}
	if err := s.client.GetJSON(ctx, "/parking/slots/"+url.PathEscape(slotID)+"/status", &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// UpdateSlotStatus pushes a status change and returns the updated slot.
func (s *RemoteParkingService) UpdateSlotStatus(ctx context.Context, slotID string, status domain.SlotStatus) (domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	body := map[string]domain.SlotStatus{"status": status}
	if err := s.client.PutJSON(ctx, "/parking/slots/"+url.PathEscape(slotID)+"/status", body, &slot); err != nil {
		return domain.ParkingSlot{}, err
	}
	return slot, nil
}

// Occupancy fetches the status map for a lot.
func (s *RemoteParkingService) Occupancy(ctx context.Context, lotID string) (map[string]domain.SlotStatus, error) {
	var occupancy map[string]domain.SlotStatus
	if err := s.client.GetJSON(ctx, "/parking/lots/"+url.PathEscape(lotID)+"/occupancy", &occupancy); err != nil {
		return nil, err
	}
	return occupancy, nil
}
