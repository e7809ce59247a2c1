package dto

import "time"

// LoginRequest credenciales de acceso (login por username, no por email).
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token emitido más el perfil autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// BootstrapRequest alta del primer admin, guardada por token compartido.
type BootstrapRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
}

// CreateUserRequest alta de usuario (solo admin).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"app_role"`
}

// UpdateUserRequest edición de usuario (solo admin). No cambia password.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"app_role"`
}

// UserResponse salida de un perfil.
type UserResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}

// UserListResponse listado de perfiles para la administración.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
