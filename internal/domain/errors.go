package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el username ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductInUse      = errors.New("producto con ventas asociadas")
	ErrUserHasSales      = errors.New("usuario con ventas registradas")
	ErrSelfDelete        = errors.New("no puede eliminar su propio usuario")
	ErrAdminExists       = errors.New("ya existe un administrador")
	ErrBarcodeExhausted  = errors.New("no se pudo generar un barcode único")
	ErrTotalIntegrity    = errors.New("venta con items y total cero")
)

// InsufficientStockError identifica el producto ofensor en un checkout.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// BarcodeExhaustedError reporta cuántos intentos de generación se agotaron.
type BarcodeExhaustedError struct {
	Attempts int
}

func (e *BarcodeExhaustedError) Error() string {
	return fmt.Sprintf("no se pudo generar barcode único tras %d intentos", e.Attempts)
}

func (e *BarcodeExhaustedError) Unwrap() error { return ErrBarcodeExhausted }
