package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/pkg/contextkeys"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/service"
	"gestion-system/pkg/utils"
)

// PermissionLoader resuelve el conjunto de permisos de un rol.
type PermissionLoader interface {
	GetPermissionsForRole(ctx context.Context, rolID uint64) (map[string]bool, error)
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	permissions PermissionLoader
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permissions PermissionLoader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		permissions: permissions,
		logger:      logger,
	}
}

// Auth valida el Bearer token y deja userID, rolID y el mapa de permisos en
// el contexto de la petición.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: encabezado Authorization vacío")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: formato inválido del encabezado Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: token rechazado", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: intento de acceso con refresh token")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		permisos, err := m.permissions.GetPermissionsForRole(c.Request().Context(), claims.RolID)
		if err != nil {
			m.logger.Error("AuthMiddleware: no se pudieron cargar los permisos del rol",
				zap.Uint64("rolId", claims.RolID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RolIDKey, claims.RolID)
		ctx = context.WithValue(ctx, contextkeys.UserPermissionsMapKey, permisos)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequirePermission corta la petición si el rol autenticado no tiene el
// permiso indicado.
func (m *AuthMiddleware) RequirePermission(permiso string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			permisos, err := utils.GetPermissionsMapFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			if !permisos[permiso] {
				m.logger.Warn("Permiso insuficiente",
					zap.String("permiso", permiso))
				return utils.ErrorResponse(c, apperrors.NewForbiddenError("No tiene permiso para esta operación"), m.logger)
			}
			return next(c)
		}
	}
}
