package dto

// TokenRequest credenciales para POST /api/auth/token.
type TokenRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// TokenResponse token emitido para consumir la API de reportes.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
