package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/pkg/config"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/service"
	"gestion-system/pkg/utils"
)

// fakeCache imita redis en memoria ignorando los TTL: las pruebas no esperan
// expiraciones reales.
type fakeCache struct {
	valores map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{valores: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.valores[key] = fmt.Sprintf("%v", value)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.valores[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.valores, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	n := int64(0)
	if v, ok := c.valores[key]; ok {
		fmt.Sscanf(v, "%d", &n) //nolint:errcheck
	}
	n++
	c.valores[key] = fmt.Sprintf("%d", n)
	return n, nil
}

type authFixture struct {
	service  AuthServiceInterface
	cache    *fakeCache
	usuarios *fakeUsuarioRepo
	cfg      *config.Config
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hashed, err := utils.HashPassword("secreto123")
	require.NoError(t, err)

	usuarios := &fakeUsuarioRepo{usuarios: map[uint64]*entities.Usuario{
		1: {ID: 1, Usuario: "jperez", Password: hashed, RolID: 2, Activo: true},
		2: {ID: 2, Usuario: "inactivo", Password: hashed, RolID: 2, Activo: false},
	}}
	cache := newFakeCache()
	cfg := config.New()
	jwtSvc := service.NewJWTService("clave-de-pruebas", time.Hour, time.Hour*2, zap.NewNop())

	return &authFixture{
		service:  NewAuthService(usuarios, cache, jwtSvc, cfg, zap.NewNop()),
		cache:    cache,
		usuarios: usuarios,
		cfg:      cfg,
	}
}

func TestLoginCorrecto(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "jperez", Password: "secreto123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, uint64(1), resp.Usuario.ID)
}

func TestLoginContrasenaIncorrecta(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "jperez", Password: "equivocada"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUsuarioInexistenteNoSeDistingue(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "fantasma", Password: "loquesea"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginCuentaDesactivada(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "inactivo", Password: "secreto123"})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestLoginBloqueoTrasIntentosFallidos(t *testing.T) {
	f := newAuthFixture(t)
	payload := dto.LoginDTO{Usuario: "jperez", Password: "equivocada"}

	for i := 0; i < f.cfg.Auth.MaxLoginAttempts; i++ {
		_, err := f.service.Login(context.Background(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Con la cuenta bloqueada, ni siquiera la contraseña correcta entra.
	_, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "jperez", Password: "secreto123"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 429, httpErr.Code)
}

func TestLoginExitosoLimpiaElContador(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginDTO{Usuario: "jperez", Password: "equivocada"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.service.Login(context.Background(), dto.LoginDTO{Usuario: "jperez", Password: "secreto123"})
	require.NoError(t, err)

	_, err = f.cache.Get(context.Background(), "auth:intentos:jperez")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestForgotPasswordSilenciosoParaDesconocidos(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Usuario: "fantasma"})

	assert.NoError(t, err)
	assert.Empty(t, f.cache.valores)
}

func TestFlujoCompletoDeRecuperacion(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, dto.ForgotPasswordDTO{Usuario: "jperez"}))

	codigo, err := f.cache.Get(ctx, "auth:reset:codigo:1")
	require.NoError(t, err)
	require.Len(t, codigo, 4)

	require.NoError(t, f.service.VerifyCode(ctx, dto.VerifyCodeDTO{Usuario: "jperez", Codigo: codigo}))

	err = f.service.ResetPassword(ctx, dto.ResetPasswordDTO{
		Usuario: "jperez", Codigo: codigo,
		Password: "nueva-clave", PasswordConfirmation: "nueva-clave",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.usuarios.resetCount)

	// El código es de un solo uso.
	err = f.service.ResetPassword(ctx, dto.ResetPasswordDTO{
		Usuario: "jperez", Codigo: codigo,
		Password: "otra-clave", PasswordConfirmation: "otra-clave",
	})
	assert.Error(t, err)
}

func TestForgotPasswordAntiSpam(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, dto.ForgotPasswordDTO{Usuario: "jperez"}))

	err := f.service.ForgotPassword(ctx, dto.ForgotPasswordDTO{Usuario: "jperez"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 429, httpErr.Code)
}

func TestVerifyCodeAgotaIntentos(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, dto.ForgotPasswordDTO{Usuario: "jperez"}))

	codigo, err := f.cache.Get(ctx, "auth:reset:codigo:1")
	require.NoError(t, err)
	equivocado := "0000"
	if codigo == equivocado {
		equivocado = "0001"
	}

	for i := 0; i <= f.cfg.Auth.MaxIntentosCodigo; i++ {
		_ = f.service.VerifyCode(ctx, dto.VerifyCodeDTO{Usuario: "jperez", Codigo: equivocado})
	}

	// Tras agotar los intentos el código se invalida aunque fuera correcto.
	_, err = f.cache.Get(ctx, "auth:reset:codigo:1")
	assert.ErrorIs(t, err, redis.Nil)
}
