package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse cuerpo mínimo para operaciones sin payload de salida.
type SuccessResponse struct {
	Success bool `json:"success"`
}
