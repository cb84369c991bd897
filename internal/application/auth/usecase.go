// Package auth implementa el login del administrador de la tienda.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/pkg/config"
	"github.com/jhoicas/Autoelectrica-api/pkg/jwt"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

// UseCase valida credenciales contra la cuenta de administrador configurada
// y emite tokens JWT. Instalación de mostrador: una sola cuenta, sin tabla de
// usuarios.
type UseCase struct {
	cfg *config.Config
	log *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(cfg *config.Config, log *logger.Logger) *UseCase {
	return &UseCase{cfg: cfg, log: log}
}

// Login valida usuario y contraseña. Si ADMIN_PASSWORD_HASH está configurado
// se compara con bcrypt; si no, se compara ADMIN_PASSWORD en tiempo
// constante. Devuelve domain.ErrUnauthorized ante cualquier credencial
// inválida, sin distinguir usuario de contraseña.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(uc.cfg.Auth.AdminUser)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if !uc.passwordMatches(req.Password) {
		uc.log.Warn().Str("user", req.Username).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWT.Secret, req.Username, "admin", uc.cfg.JWT.Issuer, uc.cfg.JWT.Expiration)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", req.Username).Msg("login exitoso")
	return &dto.LoginResponse{User: req.Username, Token: token}, nil
}

func (uc *UseCase) passwordMatches(password string) bool {
	if hash := uc.cfg.Auth.AdminPasswordHash; hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	if uc.cfg.Auth.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(uc.cfg.Auth.AdminPassword)) == 1
}
