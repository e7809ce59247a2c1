package entity

import "time"

// Roles válidos para Profile.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// ValidRole verifica el enum de rol.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSeller
}

// Profile representa un usuario del sistema. El email es interno,
// derivado del username (username@kiosco.local); el login es por username.
type Profile struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Role         string // admin | seller
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignInAt *time.Time
}
