package entity

import (
	"time"

	"gorm.io/gorm"
)

// CarePlan represents a treatment plan: a number of chiropractic and
// physical-therapy visits quoted at the clinic's session prices, with an
// optional promotional percentage. The stored investment and savings are
// the figures quoted to the patient at the time the plan was drawn up.
type CarePlan struct {
	ID              uint           `gorm:"primary_key;column:id_plan" json:"id_plan"`
	PatientID       uint           `gorm:"column:id_px;not null;index" json:"id_px"`
	PractitionerID  uint           `gorm:"column:id_dr;not null;index" json:"id_dr"`
	Date            time.Time      `gorm:"column:fecha;type:date;not null" json:"fecha"`
	Diagnosis       *string        `gorm:"column:pb_diagnostico;type:text" json:"pb_diagnostico,omitempty"`
	ChiroVisits     int            `gorm:"column:visitas_qp;default:0" json:"visitas_qp"`
	TherapyVisits   int            `gorm:"column:visitas_tf;default:0" json:"visitas_tf"`
	Stage           *string        `gorm:"column:etapa;size:100" json:"etapa,omitempty"`
	TotalInvestment float64        `gorm:"column:inversion_total;type:decimal(10,2);default:0" json:"inversion_total"`
	PromoPercent    float64        `gorm:"column:promocion_pct;type:decimal(5,2);default:0" json:"promocion_pct"`
	Savings         float64        `gorm:"column:ahorro_calculado;type:decimal(10,2);default:0" json:"ahorro_calculado"`
	AddonIDs        *string        `gorm:"column:adicionales_ids;size:255" json:"adicionales_ids,omitempty"`
	Notes           *string        `gorm:"column:notas_plan;type:text" json:"notas_plan,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Patient      *Patient      `gorm:"foreignKey:PatientID" json:"-"`
	Practitioner *Practitioner `gorm:"foreignKey:PractitionerID" json:"-"`
}

// TableName returns the table name for the CarePlan model
func (CarePlan) TableName() string {
	return "care_plans"
}
