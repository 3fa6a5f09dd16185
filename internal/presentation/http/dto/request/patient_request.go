package request

// CreatePatientRequest represents a patient registration request. Field
// names mirror the columns the clinic's intake form has always used.
type CreatePatientRequest struct {
	PractitionerID   uint    `json:"id_dr" binding:"required"`
	Date             string  `json:"fecha"`
	FirstName        string  `json:"nombre" binding:"required,max=255"`
	LastNamePaternal string  `json:"apellidop" binding:"required,max=255"`
	LastNameMaternal *string `json:"apellidom"`
	BirthDate        *string `json:"nacimiento"`
	Referral         *string `json:"comoentero"`
	Address          *string `json:"direccion"`
	MaritalStatus    *string `json:"estadocivil"`
	Children         *int    `json:"hijos"`
	Occupation       *string `json:"ocupacion"`
	HomePhone        *string `json:"telcasa"`
	MobilePhone      *string `json:"cel"`
	Email            *string `json:"correo" binding:"omitempty,email"`
	EmergencyPhone   *string `json:"emergencia"`
	EmergencyContact *string `json:"contacto"`
	EmergencyKinship *string `json:"parentesco"`
}

// UpdatePatientRequest reuses the create shape; the ID comes from the URL.
type UpdatePatientRequest = CreatePatientRequest
