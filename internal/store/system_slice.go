package store

import "smartpark/internal/domain"

// CameraState tracks detection camera health keyed by camera id.
type CameraState struct {
	Cameras map[string]domain.Camera
}

func reduceCameras(s CameraState, ev Event) CameraState {
	switch e := ev.(type) {
	case CameraStatusChanged:
		out := make(map[string]domain.Camera, len(s.Cameras)+1)
		for k, v := range s.Cameras {
			out[k] = v
		}
		out[e.Camera.ID] = e.Camera
		s.Cameras = out
	}
	return s
}

// SystemState holds platform-wide stats, settings and maintenance
// announcements.
type SystemState struct {
	Stats       *domain.SystemStats
	Config      domain.SystemConfig
	Maintenance domain.MaintenanceWindow
}

func reduceSystem(s SystemState, ev Event) SystemState {
	switch e := ev.(type) {
	case StatsUpdated:
		stats := e.Stats
		s.Stats = &stats
	case SystemConfigUpdated:
		s.Config = e.Config
	case MaintenanceAnnounced:
		s.Maintenance = e.Window
	}
	return s
}
