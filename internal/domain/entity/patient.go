package entity

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Patient represents a patient record. The JSON field names mirror the
// columns the clinic's templates and search widget have always consumed.
type Patient struct {
	ID               uint           `gorm:"primary_key;column:id_px" json:"id_px"`
	PractitionerID   uint           `gorm:"column:id_dr;index" json:"id_dr"`
	RegisteredAt     time.Time      `gorm:"column:fecha;type:date" json:"fecha"`
	Referral         *string        `gorm:"column:comoentero;size:255" json:"comoentero,omitempty"`
	FirstName        string         `gorm:"column:nombre;size:255;not null" json:"nombre"`
	LastNamePaternal string         `gorm:"column:apellidop;size:255;not null" json:"apellidop"`
	LastNameMaternal *string        `gorm:"column:apellidom;size:255" json:"apellidom,omitempty"`
	BirthDate        *time.Time     `gorm:"column:nacimiento;type:date" json:"nacimiento,omitempty"`
	Address          *string        `gorm:"column:direccion;type:text" json:"direccion,omitempty"`
	MaritalStatus    *string        `gorm:"column:estadocivil;size:50" json:"estadocivil,omitempty"`
	Children         *int           `gorm:"column:hijos" json:"hijos,omitempty"`
	Occupation       *string        `gorm:"column:ocupacion;size:255" json:"ocupacion,omitempty"`
	HomePhone        *string        `gorm:"column:telcasa;size:50" json:"telcasa,omitempty"`
	MobilePhone      *string        `gorm:"column:cel;size:50" json:"cel,omitempty"`
	Email            *string        `gorm:"column:correo;size:255" json:"correo,omitempty"`
	EmergencyPhone   *string        `gorm:"column:emergencia;size:50" json:"emergencia,omitempty"`
	EmergencyContact *string        `gorm:"column:contacto;size:255" json:"contacto,omitempty"`
	EmergencyKinship *string        `gorm:"column:parentesco;size:100" json:"parentesco,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Practitioner *Practitioner `gorm:"foreignKey:PractitionerID" json:"-"`
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

// FullName joins the patient's name and surnames for display.
func (p *Patient) FullName() string {
	parts := []string{p.FirstName, p.LastNamePaternal}
	if p.LastNameMaternal != nil && *p.LastNameMaternal != "" {
		parts = append(parts, *p.LastNameMaternal)
	}
	return strings.Join(parts, " ")
}
