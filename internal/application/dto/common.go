package dto

// ErrorResponse cuerpo de error de negocio o de almacenamiento.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse cuerpo de rechazo de la petición (cuerpo vacío o inválido).
type MessageResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// HealthResponse respuesta de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
