package dto

import "time"

// LoginRequest accepts either the student's name or NIM together with the NRM
type LoginRequest struct {
	NamamNim string `json:"namam_nim" binding:"required" example:"A11.2021.00001"`
	NRM      string `json:"nrm" binding:"required" example:"2021001"`
}

// StudentIdentity is the public identity carried in tokens and login responses
type StudentIdentity struct {
	NRM   string `json:"nrm" example:"2021001"`
	NIM   string `json:"nim" example:"A11.2021.00001"`
	Namam string `json:"namam" example:"Siti Aminah"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      StudentIdentity `json:"user"`
}

// ProfileResponse is the authenticated student's profile
type ProfileResponse struct {
	NRM      string     `json:"nrm" example:"2021001"`
	NIM      string     `json:"nim" example:"A11.2021.00001"`
	Namam    string     `json:"namam" example:"Siti Aminah"`
	TgDaftar *time.Time `json:"tgdaftar"`
	TpLahir  *string    `json:"tplahir" example:"Semarang"`
}
