package entity

import "time"

// Clinic is a physical location where practitioners attend patients. Its
// contact details are printed on every receipt issued there.
type Clinic struct {
	ID        uint      `gorm:"primary_key;column:id_centro" json:"id_centro"`
	Name      string    `gorm:"column:nombre;size:255;not null" json:"nombre"`
	Address   *string   `gorm:"column:direccion;type:text" json:"direccion,omitempty"`
	Phone     *string   `gorm:"column:tel;size:50" json:"tel,omitempty"`
	Mobile    *string   `gorm:"column:cel;size:50" json:"cel,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// Practitioner represents a doctor attending patients and issuing receipts.
type Practitioner struct {
	ID        uint      `gorm:"primary_key;column:id_dr" json:"id_dr"`
	Name      string    `gorm:"column:nombre;size:255;not null" json:"nombre"`
	ClinicID  *uint     `gorm:"column:centro;index" json:"centro,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Clinic *Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName returns the table name for the Practitioner model
func (Practitioner) TableName() string {
	return "practitioners"
}
