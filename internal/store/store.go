// Package store holds all client state in one dependency-injected
// container. State is partitioned into slices, each with its own pure
// transition function; every mutation goes through Dispatch, which applies
// the event synchronously and run-to-completion, so readers never observe a
// half-applied update.
package store

import (
	"sync"

	"go.uber.org/zap"
)

// RootState composes every slice. Reducers never mutate shared structures
// in place, so snapshots handed to listeners stay valid after later
// dispatches.
type RootState struct {
	Auth          AuthState
	Parking       ParkingState
	Booking       BookingState
	Connection    ConnectionState
	Cameras       CameraState
	System        SystemState
	Notifications NotificationState
}

// Listener observes the state after each applied event.
type Listener func(RootState)

// Store serializes all state transitions. There is deliberately no package
// level instance; construct one and pass it to whatever needs it.
type Store struct {
	mu        sync.Mutex
	state     RootState
	listeners map[int]Listener
	nextID    int
	logger    *zap.Logger
}

// New returns an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// Dispatch routes the event through every slice reducer and notifies
// listeners with the resulting snapshot. Dispatches from concurrent
// goroutines are applied one at a time.
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	s.state = reduceRoot(s.state, ev)
	snapshot := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// State returns the current snapshot.
func (s *Store) State() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns a function that removes it.
// Removal must happen before the owning component is torn down so no
// notification lands in retired state.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// reduceRoot is the explicit top-level router: each slice sees every event
// and ignores the ones it does not handle.
func reduceRoot(s RootState, ev Event) RootState {
	s.Auth = reduceAuth(s.Auth, ev)
	s.Parking = reduceParking(s.Parking, ev)
	s.Booking = reduceBooking(s.Booking, ev)
	s.Connection = reduceConnection(s.Connection, ev)
	s.Cameras = reduceCameras(s.Cameras, ev)
	s.System = reduceSystem(s.System, ev)
	s.Notifications = reduceNotifications(s.Notifications, ev)
	return s
}
