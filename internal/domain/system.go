package domain

import "time"

// CameraStatus reflects detection camera health.
type CameraStatus string

const (
	CameraOnline      CameraStatus = "online"
	CameraOffline     CameraStatus = "offline"
	CameraDegraded    CameraStatus = "degraded"
	CameraMaintenance CameraStatus = "maintenance"
)

// Camera is a detection camera attached to a lot.
type Camera struct {
	ID        string       `json:"id"`
	LotID     string       `json:"parkingLotId"`
	Name      string       `json:"name"`
	Status    CameraStatus `json:"status"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SystemStats is a snapshot of platform-wide counters pushed by the server.
type SystemStats struct {
	TotalSlots     int       `json:"totalSlots"`
	AvailableSlots int       `json:"availableSlots"`
	OccupiedSlots  int       `json:"occupiedSlots"`
	ReservedSlots  int       `json:"reservedSlots"`
	OccupancyRate  float64   `json:"occupancyRate"`
	ActiveBookings int       `json:"activeBookings"`
	TotalRevenue   float64   `json:"totalRevenue"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// MaintenanceWindow announces planned downtime.
type MaintenanceWindow struct {
	IsEnabled bool       `json:"isEnabled"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// SystemConfig carries server-controlled platform settings.
type SystemConfig struct {
	MaintenanceMode       bool          `json:"maintenanceMode"`
	BookingEnabled        bool          `json:"bookingEnabled"`
	MaxBookingHours       int           `json:"maxBookingHours"`
	SupportedVehicleTypes []VehicleType `json:"supportedVehicleTypes,omitempty"`
}
