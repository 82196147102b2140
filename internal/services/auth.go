package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	"gestion-system/pkg/config"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/service"
	"gestion-system/pkg/utils"
)

const (
	keyIntentosLogin  = "auth:intentos:%s"
	keyBloqueoLogin   = "auth:bloqueo:%s"
	keyCodigoReset    = "auth:reset:codigo:%d"
	keyAntiSpamReset  = "auth:reset:antispam:%d"
	keyIntentosCodigo = "auth:reset:intentos:%d"
	keyCodigoOK       = "auth:reset:verificado:%d"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Me(ctx context.Context, userID uint64) (*entities.Usuario, error)
	ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error
	VerifyCode(ctx context.Context, payload dto.VerifyCodeDTO) error
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
}

type AuthService struct {
	usuarioRepo repositories.UsuarioRepositoryInterface
	cache       repositories.CacheRepositoryInterface
	jwtService  service.JWTService
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthService(
	usuarioRepo repositories.UsuarioRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		usuarioRepo: usuarioRepo,
		cache:       cache,
		jwtService:  jwtService,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	bloqueoKey := fmt.Sprintf(keyBloqueoLogin, payload.Usuario)
	if _, err := s.cache.Get(ctx, bloqueoKey); err == nil {
		return nil, apperrors.NewHttpError(429,
			"Demasiados intentos fallidos. La cuenta está bloqueada temporalmente.", nil, nil)
	}

	usuario, err := s.usuarioRepo.FindByLogin(ctx, payload.Usuario)
	if err != nil {
		// No revelamos si el usuario existe: el contador corre igual.
		s.registrarIntentoFallido(ctx, payload.Usuario)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !usuario.Activo {
		return nil, apperrors.NewForbiddenError("La cuenta está desactivada")
	}

	if err := utils.CheckPassword(usuario.Password, payload.Password); err != nil {
		s.registrarIntentoFallido(ctx, payload.Usuario)
		return nil, apperrors.ErrInvalidCredentials
	}

	_ = s.cache.Del(ctx, fmt.Sprintf(keyIntentosLogin, payload.Usuario))

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(usuario.ID, usuario.RolID)
	if err != nil {
		s.logger.Error("Error generando tokens", zap.Error(err), zap.Uint64("user_id", usuario.ID))
		return nil, err
	}

	return &dto.LoginResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Usuario:      usuario,
	}, nil
}

func (s *AuthService) registrarIntentoFallido(ctx context.Context, login string) {
	intentosKey := fmt.Sprintf(keyIntentosLogin, login)
	intentos, err := s.cache.Incr(ctx, intentosKey)
	if err != nil {
		s.logger.Warn("No se pudo incrementar el contador de intentos", zap.Error(err))
		return
	}
	if intentos == 1 {
		_ = s.cache.Set(ctx, intentosKey, intentos, s.cfg.Auth.LockoutDuration)
	}
	if intentos >= int64(s.cfg.Auth.MaxLoginAttempts) {
		_ = s.cache.Set(ctx, fmt.Sprintf(keyBloqueoLogin, login), "1", s.cfg.Auth.LockoutDuration)
		_ = s.cache.Del(ctx, intentosKey)
		s.logger.Warn("Cuenta bloqueada por intentos fallidos", zap.String("usuario", login))
	}
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*entities.Usuario, error) {
	return s.usuarioRepo.FindByID(ctx, userID)
}

// ForgotPassword genera un código de 4 dígitos y lo deja en redis con TTL
// corto. En esta instalación el código se entrega por el canal interno de la
// mesa de ayuda; el endpoint responde igual exista o no el usuario.
func (s *AuthService) ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error {
	usuario, err := s.usuarioRepo.FindByLogin(ctx, payload.Usuario)
	if err != nil {
		return nil
	}

	antiSpamKey := fmt.Sprintf(keyAntiSpamReset, usuario.ID)
	if _, err := s.cache.Get(ctx, antiSpamKey); err == nil {
		return apperrors.NewHttpError(429,
			"Ya se generó un código recientemente. Espere un momento.", nil, nil)
	}

	codigo, err := generarCodigo()
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, fmt.Sprintf(keyCodigoReset, usuario.ID), codigo, s.cfg.Auth.CodigoResetTTL); err != nil {
		return err
	}
	_ = s.cache.Set(ctx, antiSpamKey, "1", s.cfg.Auth.VentanaAntiSpam)
	_ = s.cache.Del(ctx, fmt.Sprintf(keyIntentosCodigo, usuario.ID))

	s.logger.Info("Código de recuperación generado",
		zap.Uint64("user_id", usuario.ID),
		zap.String("codigo", codigo),
	)
	return nil
}

func (s *AuthService) VerifyCode(ctx context.Context, payload dto.VerifyCodeDTO) error {
	usuario, err := s.usuarioRepo.FindByLogin(ctx, payload.Usuario)
	if err != nil {
		return apperrors.NewBadRequestError("Código inválido o expirado")
	}
	if err := s.validarCodigo(ctx, usuario.ID, payload.Codigo); err != nil {
		return err
	}
	_ = s.cache.Set(ctx, fmt.Sprintf(keyCodigoOK, usuario.ID), "1", s.cfg.Auth.CodigoResetTTL)
	return nil
}

func (s *AuthService) validarCodigo(ctx context.Context, userID uint64, codigo string) error {
	intentosKey := fmt.Sprintf(keyIntentosCodigo, userID)
	intentos, err := s.cache.Incr(ctx, intentosKey)
	if err == nil && intentos == 1 {
		_ = s.cache.Set(ctx, intentosKey, intentos, s.cfg.Auth.CodigoResetTTL)
	}
	if intentos > int64(s.cfg.Auth.MaxIntentosCodigo) {
		_ = s.cache.Del(ctx, fmt.Sprintf(keyCodigoReset, userID))
		return apperrors.NewHttpError(429,
			"Demasiados intentos. Solicite un código nuevo.", nil, nil)
	}

	guardado, err := s.cache.Get(ctx, fmt.Sprintf(keyCodigoReset, userID))
	if err != nil {
		if err == redis.Nil {
			return apperrors.NewBadRequestError("Código inválido o expirado")
		}
		return err
	}
	if guardado != codigo {
		return apperrors.NewBadRequestError("Código inválido o expirado")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	usuario, err := s.usuarioRepo.FindByLogin(ctx, payload.Usuario)
	if err != nil {
		return apperrors.NewBadRequestError("Código inválido o expirado")
	}

	if err := s.validarCodigo(ctx, usuario.ID, payload.Codigo); err != nil {
		return err
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return err
	}
	if err := s.usuarioRepo.UpdatePassword(ctx, usuario.ID, hashed); err != nil {
		return err
	}

	// El código es de un solo uso.
	_ = s.cache.Del(ctx,
		fmt.Sprintf(keyCodigoReset, usuario.ID),
		fmt.Sprintf(keyCodigoOK, usuario.ID),
		fmt.Sprintf(keyIntentosCodigo, usuario.ID),
	)

	s.logger.Info("Contraseña restablecida", zap.Uint64("user_id", usuario.ID))
	return nil
}

func generarCodigo() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
