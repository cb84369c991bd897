package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Autoelectrica-api/internal/application/auth"
	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/pkg/config"
	"github.com/jhoicas/Autoelectrica-api/pkg/jwt"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

func authConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "clave-de-prueba",
			Expiration: 60,
			Issuer:     "autoelectrica-stock",
		},
		Auth: config.AuthConfig{
			AdminUser:     "admin",
			AdminPassword: "taller123",
		},
	}
}

func TestLoginPlainPassword(t *testing.T) {
	uc := auth.NewUseCase(authConfig(t), logger.New(logger.Config{Level: "error"}))

	resp, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "taller123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User)

	user, role, err := jwt.Parse("clave-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "admin", role)
}

func TestLoginBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("taller123"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := authConfig(t)
	cfg.Auth.AdminPassword = ""
	cfg.Auth.AdminPasswordHash = string(hash)
	uc := auth.NewUseCase(cfg, logger.New(logger.Config{Level: "error"}))

	_, err = uc.Login(dto.LoginRequest{Username: "admin", Password: "taller123"})
	assert.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginRejected(t *testing.T) {
	uc := auth.NewUseCase(authConfig(t), logger.New(logger.Config{Level: "error"}))

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"usuario incorrecto", dto.LoginRequest{Username: "otro", Password: "taller123"}},
		{"contraseña incorrecta", dto.LoginRequest{Username: "admin", Password: "mala"}},
		{"credenciales vacías", dto.LoginRequest{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(tc.req)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	cfg := authConfig(t)
	cfg.Auth.AdminPassword = ""
	uc := auth.NewUseCase(cfg, logger.New(logger.Config{Level: "error"}))

	_, err := uc.Login(dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
