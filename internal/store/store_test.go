package store

import (
	"sync"
	"testing"

	"smartpark/internal/domain"
)

func TestDispatchNotifiesListeners(t *testing.T) {
	s := New(nil)
	var got []RootState
	s.Subscribe(func(st RootState) { got = append(got, st) })

	s.Dispatch(ConnectionStart{})
	s.Dispatch(ConnectionSuccess{})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].Connection.IsConnecting {
		t.Fatalf("first snapshot should be connecting: %+v", got[0].Connection)
	}
	if !got[1].Connection.IsConnected {
		t.Fatalf("second snapshot should be connected: %+v", got[1].Connection)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := New(nil)
	calls := 0
	remove := s.Subscribe(func(RootState) { calls++ })

	s.Dispatch(ConnectionStart{})
	remove()
	s.Dispatch(ConnectionSuccess{})

	if calls != 1 {
		t.Fatalf("expected 1 call after unsubscribe, got %d", calls)
	}
}

func TestSnapshotStableAcrossLaterDispatches(t *testing.T) {
	s := New(nil)
	s.Dispatch(SelectLot{LotID: "lot-central"})
	s.Dispatch(SlotsLoaded{Slots: []domain.ParkingSlot{
		slotFixture("A-1", "lot-central", domain.SlotAvailable),
	}})

	before := s.State()
	s.Dispatch(UpdateRealTimeSlot{SlotID: "A-1", Status: domain.SlotOccupied})

	if before.Parking.Slots[0].Status != domain.SlotAvailable {
		t.Fatalf("earlier snapshot mutated by later dispatch: %+v", before.Parking.Slots[0])
	}
	if got := s.State().Parking.Slots[0].Status; got != domain.SlotOccupied {
		t.Fatalf("current state missing update: %q", got)
	}
}

func TestConcurrentDispatchesAllApply(t *testing.T) {
	s := New(nil)
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.Dispatch(NotificationAdded{Notification: domain.Notification{ID: "n", Title: "t"}})
		}()
	}
	wg.Wait()

	if got := len(s.State().Notifications.Notifications); got != n {
		t.Fatalf("expected %d notifications, got %d", n, got)
	}
}

func TestNotificationReadBookkeeping(t *testing.T) {
	s := New(nil)
	s.Dispatch(NotificationAdded{Notification: domain.Notification{ID: "n1"}})
	s.Dispatch(NotificationAdded{Notification: domain.Notification{ID: "n2"}})
	if got := s.State().Notifications.UnreadCount; got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}

	s.Dispatch(NotificationRead{ID: "n1"})
	if got := s.State().Notifications.UnreadCount; got != 1 {
		t.Fatalf("unread = %d, want 1", got)
	}
	// Re-reading an already read notification must not drive the count
	// negative.
	s.Dispatch(NotificationRead{ID: "n1"})
	if got := s.State().Notifications.UnreadCount; got != 1 {
		t.Fatalf("unread = %d after redundant read, want 1", got)
	}

	s.Dispatch(AllNotificationsRead{})
	st := s.State().Notifications
	if st.UnreadCount != 0 {
		t.Fatalf("unread = %d, want 0", st.UnreadCount)
	}
	for _, n := range st.Notifications {
		if !n.IsRead {
			t.Fatalf("notification %s still unread", n.ID)
		}
	}
}

func TestAuthClearedResetsDependentSlices(t *testing.T) {
	s := New(nil)
	s.Dispatch(AuthSucceeded{Session: domain.AuthSession{
		User:  domain.User{ID: "user-1", Email: "user@test.com"},
		Token: "tok",
	}})
	s.Dispatch(BookingUpserted{Booking: domain.Booking{ID: "b1", UserID: "user-1"}})
	s.Dispatch(SelectLot{LotID: "lot-central"})

	s.Dispatch(AuthCleared{})
	st := s.State()
	if st.Auth.IsAuthenticated || st.Auth.Token != "" {
		t.Fatalf("auth not cleared: %+v", st.Auth)
	}
	if len(st.Booking.Bookings) != 0 {
		t.Fatalf("bookings survived logout: %+v", st.Booking.Bookings)
	}
	if st.Parking.SelectedLotID != "" {
		t.Fatalf("selected lot survived logout: %q", st.Parking.SelectedLotID)
	}
}

func TestBookingUpsert(t *testing.T) {
	s := BookingState{}
	s = reduceBooking(s, BookingUpserted{Booking: domain.Booking{ID: "b1", Status: domain.BookingPending}})
	s = reduceBooking(s, BookingUpserted{Booking: domain.Booking{ID: "b2", Status: domain.BookingConfirmed}})
	s = reduceBooking(s, BookingUpserted{Booking: domain.Booking{ID: "b1", Status: domain.BookingActive}})

	if len(s.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(s.Bookings))
	}
	if s.Bookings[0].Status != domain.BookingActive {
		t.Fatalf("b1 not replaced in place: %+v", s.Bookings[0])
	}
}

func TestSystemSliceUpdates(t *testing.T) {
	s := New(nil)
	s.Dispatch(StatsUpdated{Stats: domain.SystemStats{TotalSlots: 80}})
	s.Dispatch(SystemConfigUpdated{Config: domain.SystemConfig{MaintenanceMode: true}})
	s.Dispatch(CameraStatusChanged{Camera: domain.Camera{ID: "cam-1", Status: domain.CameraOffline}})

	st := s.State()
	if st.System.Stats == nil || st.System.Stats.TotalSlots != 80 {
		t.Fatalf("stats not applied: %+v", st.System.Stats)
	}
	if !st.System.Config.MaintenanceMode {
		t.Fatalf("config not applied: %+v", st.System.Config)
	}
	if got := st.Cameras.Cameras["cam-1"].Status; got != domain.CameraOffline {
		t.Fatalf("camera status = %q", got)
	}
}
