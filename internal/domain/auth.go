package domain

import "time"

// UserRole controls access to admin-only operations and channels.
type UserRole string

const (
	RolePublic   UserRole = "public"
	RoleUser     UserRole = "user"
	RoleAdmin    UserRole = "admin"
	RoleSecurity UserRole = "security"
)

// VehicleType classifies a registered vehicle for slot compatibility checks.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck      VehicleType = "truck"
	VehicleVan        VehicleType = "van"
)

// User is an account known to the platform.
type User struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Phone      string      `json:"phone"`
	Role       UserRole    `json:"role"`
	FastagID   string      `json:"fastagId,omitempty"`
	IsVerified bool        `json:"isVerified"`
	Vehicles   []Vehicle   `json:"vehicles,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Vehicle belongs to a user and determines which slots it can book.
type Vehicle struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	LicensePlate string      `json:"licensePlate"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Color        string      `json:"color"`
	VehicleType  VehicleType `json:"vehicleType"`
	IsActive     bool        `json:"isActive"`
}

// AuthSession is the result of a successful authentication.
type AuthSession struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
