package models

import "time"

// Courier statuses.
const (
	CourierStatusActive   = "active"
	CourierStatusInactive = "inactive"
)

// Courier (repartidor) delivers route orders.
type Courier struct {
	ID               int64      `db:"id" json:"id"`
	FirstName        string     `db:"first_name" json:"nombre"`
	LastName         string     `db:"last_name" json:"apellido"`
	DNI              *string    `db:"dni" json:"dni"`
	Phone            *string    `db:"phone" json:"telefono"`
	Address          *string    `db:"address" json:"direccion"`
	Email            *string    `db:"email" json:"email"`
	HiredAt          time.Time  `db:"hired_at" json:"fecha_ingreso"`
	Status           string     `db:"status" json:"estado"`
	Notes            *string    `db:"notes" json:"observaciones"`
	LicenseNumber    *string    `db:"license_number" json:"licencia_conducir"`
	LicenseExpiresAt *time.Time `db:"license_expires_at" json:"vencimiento_licencia"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// CourierRequest is the mutable subset of Courier.
type CourierRequest struct {
	FirstName        string     `json:"nombre"`
	LastName         string     `json:"apellido"`
	DNI              *string    `json:"dni,omitempty"`
	Phone            *string    `json:"telefono,omitempty"`
	Address          *string    `json:"direccion,omitempty"`
	Email            *string    `json:"email,omitempty"`
	HiredAt          *time.Time `json:"fecha_ingreso,omitempty"`
	Status           string     `json:"estado,omitempty"`
	Notes            *string    `json:"observaciones,omitempty"`
	LicenseNumber    *string    `json:"licencia_conducir,omitempty"`
	LicenseExpiresAt *time.Time `json:"vencimiento_licencia,omitempty"`
}
