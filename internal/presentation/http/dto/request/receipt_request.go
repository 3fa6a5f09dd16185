package request

// RegisterInstallmentRequest represents an installment against a pending receipt
type RegisterInstallmentRequest struct {
	Amount float64 `json:"monto" binding:"required,gt=0"`
	Method string  `json:"metodo_pago" binding:"omitempty,max=100"`
	Date   string  `json:"fecha"`
	Notes  *string `json:"notas"`
}

// CreateCarePlanRequest represents a quoted care plan
type CreateCarePlanRequest struct {
	PatientID       uint    `json:"id_px" binding:"required"`
	PractitionerID  uint    `json:"id_dr" binding:"required"`
	Date            string  `json:"fecha"`
	Diagnosis       *string `json:"pb_diagnostico"`
	ChiroVisits     int     `json:"visitas_qp" binding:"omitempty,gte=0"`
	ChiroUnitCost   float64 `json:"costo_qp" binding:"omitempty,gte=0"`
	TherapyVisits   int     `json:"visitas_tf" binding:"omitempty,gte=0"`
	TherapyUnitCost float64 `json:"costo_tf" binding:"omitempty,gte=0"`
	PromoPercent    float64 `json:"promocion_pct" binding:"omitempty,gte=0,lte=100"`
	Stage           *string `json:"etapa"`
	AddonIDs        *string `json:"adicionales_ids"`
	Notes           *string `json:"notas_plan"`
}
