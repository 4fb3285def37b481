package dto

// VerifyIdentityRequest is stage one of self registration
type VerifyIdentityRequest struct {
	Nama    string `json:"nama" example:"Siti Aminah"`
	NIM     string `json:"nim" example:"A11.2021.00001"`
	NRM     string `json:"nrm" example:"2021001"`
	TgLahir string `json:"tglahir" example:"2003-07-15"`
}

// CreateAccountRequest is stage two; it repeats the stage one fields
type CreateAccountRequest struct {
	VerifyIdentityRequest
	Username string `json:"username" example:"sitiaminah"`
	Email    string `json:"email" example:"siti@example.ac.id"`
	Password string `json:"password" example:"rahasia123"`
}

// VerifiedStudent is returned when stage one succeeds
type VerifiedStudent struct {
	Nama string `json:"nama" example:"Siti Aminah"`
	NIM  string `json:"nim" example:"A11.2021.00001"`
	NRM  string `json:"nrm" example:"2021001"`
}

// CreatedAccount is returned when stage two succeeds
type CreatedAccount struct {
	Username string `json:"username" example:"sitiaminah"`
	NIM      string `json:"nim" example:"A11.2021.00001"`
}
