// Package auth emite los tokens de acceso a la API de reportes.
//
// No hay tabla de usuarios: la API es de solo lectura y se protege con un
// único par de credenciales configurado por entorno (AUTH_USER y el hash
// bcrypt AUTH_PASSWORD_HASH).
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/superstore-analytics/internal/application/dto"
	"github.com/jhoicas/superstore-analytics/internal/domain"
	"github.com/jhoicas/superstore-analytics/pkg/jwt"
)

// Config credenciales y parámetros de emisión de tokens.
type Config struct {
	User         string // usuario permitido
	PasswordHash string // hash bcrypt de la contraseña
	JWTSecret    string
	Issuer       string
	ExpMinutes   int
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// IssueToken verifica las credenciales y genera un JWT.
// Devuelve domain.ErrUnauthorized ante cualquier credencial inválida, sin
// distinguir si falló el usuario o la contraseña.
func (uc *UseCase) IssueToken(in dto.TokenRequest) (*dto.TokenResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(in.User), []byte(uc.cfg.User)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, in.User, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: uc.cfg.ExpMinutes * 60,
	}, nil
}
