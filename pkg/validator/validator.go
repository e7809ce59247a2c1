// Package validator envuelve go-playground/validator para validar DTOs
// antes de tocar cualquier repositorio.
package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator valida structs anotados con tags `validate`.
type Validator interface {
	Validate(s any) error
}

// DefaultValidator implementación sobre go-playground/validator.
type DefaultValidator struct {
	v *validator.Validate
}

// New construye el validador con las validaciones custom registradas.
func New() (*DefaultValidator, error) {
	v := validator.New()

	// payment_method: enum de métodos de pago del kiosco
	if err := v.RegisterValidation("payment_method", validatePaymentMethod); err != nil {
		return nil, fmt.Errorf("registrar validación payment_method: %w", err)
	}
	// app_role: enum de roles de perfil
	if err := v.RegisterValidation("app_role", validateAppRole); err != nil {
		return nil, fmt.Errorf("registrar validación app_role: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

// Validate valida el struct y devuelve validator.ValidationErrors si falla.
func (dv *DefaultValidator) Validate(s any) error {
	return dv.v.Struct(s)
}

// IsValidationError indica si el error proviene de la validación de un struct.
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

// Message arma un mensaje legible para el primer error de validación.
func Message(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "entrada inválida"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID válido", fe.Field())
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser a lo sumo %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual que %s", fe.Field(), fe.Param())
	case "payment_method":
		return fmt.Sprintf("%s debe ser CASH o MERCADO_PAGO", fe.Field())
	case "app_role":
		return fmt.Sprintf("%s debe ser admin o seller", fe.Field())
	default:
		return fmt.Sprintf("%s es inválido", fe.Field())
	}
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || s == "CASH" || s == "MERCADO_PAGO"
}

func validateAppRole(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "admin" || s == "seller"
}
