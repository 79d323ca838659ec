package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthorized   = errors.New("no autorizado")
	ErrMalformedInput = errors.New("dato mal formado en la fuente")
)
