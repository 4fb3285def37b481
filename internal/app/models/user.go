package models

// NewAccount carries everything needed to create a student login. It maps to
// one user_mahasiswa row in the academic store plus a user row and a user_role
// row in the identity store.
type NewAccount struct {
	Username     string
	Email        string
	PasswordHash string
	Name         string
	NIM          string
}
