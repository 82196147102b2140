package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	"gestion-system/pkg/types"
)

const (
	keyPermisosRol = "permisos:rol:%d"
	ttlPermisosRol = time.Minute * 10
)

type PermisoServiceInterface interface {
	GetPermisos(ctx context.Context, filter types.Filter) ([]entities.Permiso, uint64, error)
	FindPermiso(ctx context.Context, id uint64) (*entities.Permiso, error)
	CreatePermiso(ctx context.Context, payload dto.CreatePermisoDTO) (*entities.Permiso, error)
	UpdatePermiso(ctx context.Context, id uint64, payload dto.UpdatePermisoDTO) (*entities.Permiso, error)
	DeletePermiso(ctx context.Context, id uint64) error
	GetRolesConPermisos(ctx context.Context) ([]entities.RolConPermisos, error)
	AssignPermisos(ctx context.Context, payload dto.AssignPermisosDTO) error

	// GetPermissionsForRole implementa el cargador que usa el middleware de
	// autorización; va contra redis y solo toca la base si no hay caché.
	GetPermissionsForRole(ctx context.Context, rolID uint64) (map[string]bool, error)
}

type PermisoService struct {
	permisoRepo repositories.PermisoRepositoryInterface
	cache       repositories.CacheRepositoryInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
}

func NewPermisoService(
	permisoRepo repositories.PermisoRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PermisoServiceInterface {
	return &PermisoService{
		permisoRepo: permisoRepo,
		cache:       cache,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *PermisoService) GetPermisos(ctx context.Context, filter types.Filter) ([]entities.Permiso, uint64, error) {
	return s.permisoRepo.GetPermisos(ctx, filter)
}

func (s *PermisoService) FindPermiso(ctx context.Context, id uint64) (*entities.Permiso, error) {
	return s.permisoRepo.FindPermiso(ctx, id)
}

func (s *PermisoService) CreatePermiso(ctx context.Context, payload dto.CreatePermisoDTO) (*entities.Permiso, error) {
	newID, err := s.permisoRepo.CreatePermiso(ctx, entities.Permiso{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
	})
	if err != nil {
		return nil, err
	}
	return s.permisoRepo.FindPermiso(ctx, newID)
}

func (s *PermisoService) UpdatePermiso(ctx context.Context, id uint64, payload dto.UpdatePermisoDTO) (*entities.Permiso, error) {
	err := s.permisoRepo.UpdatePermiso(ctx, id, entities.Permiso{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
	})
	if err != nil {
		return nil, err
	}
	return s.permisoRepo.FindPermiso(ctx, id)
}

func (s *PermisoService) DeletePermiso(ctx context.Context, id uint64) error {
	return s.permisoRepo.DeletePermiso(ctx, id)
}

func (s *PermisoService) GetRolesConPermisos(ctx context.Context) ([]entities.RolConPermisos, error) {
	return s.permisoRepo.GetRolesConPermisos(ctx)
}

func (s *PermisoService) AssignPermisos(ctx context.Context, payload dto.AssignPermisosDTO) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.permisoRepo.ReplaceRolPermisos(ctx, tx, payload.RolID, payload.Permisos)
	})
	if err != nil {
		return err
	}
	// La caché del rol queda obsoleta tras reasignar.
	_ = s.cache.Del(ctx, fmt.Sprintf(keyPermisosRol, payload.RolID))
	return nil
}

func (s *PermisoService) GetPermissionsForRole(ctx context.Context, rolID uint64) (map[string]bool, error) {
	cacheKey := fmt.Sprintf(keyPermisosRol, rolID)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		permisos := make(map[string]bool)
		if err := json.Unmarshal([]byte(cached), &permisos); err == nil {
			return permisos, nil
		}
		s.logger.Warn("Caché de permisos corrupta, se recarga", zap.Uint64("rol_id", rolID))
	}

	nombres, err := s.permisoRepo.GetPermisoNamesByRol(ctx, rolID)
	if err != nil {
		return nil, err
	}

	permisos := make(map[string]bool, len(nombres))
	for _, nombre := range nombres {
		permisos[nombre] = true
	}

	if data, err := json.Marshal(permisos); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), ttlPermisosRol); err != nil {
			s.logger.Warn("No se pudo cachear los permisos del rol", zap.Error(err))
		}
	}

	return permisos, nil
}
