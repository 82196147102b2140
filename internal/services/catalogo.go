package services

import (
	"context"

	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/types"
)

// -----------------------------------------------------------
// CP PRODUCTOS
// -----------------------------------------------------------

type ProductoServiceInterface interface {
	GetProductos(ctx context.Context, filter types.Filter) ([]entities.Producto, uint64, error)
	FindProducto(ctx context.Context, id uint64) (*entities.Producto, error)
	CreateProducto(ctx context.Context, payload dto.CreateProductoDTO) (*entities.Producto, error)
	UpdateProducto(ctx context.Context, id uint64, payload dto.UpdateProductoDTO) (*entities.Producto, error)
	DeleteProducto(ctx context.Context, id uint64) error
}

type ProductoService struct {
	repo   repositories.ProductoRepositoryInterface
	logger *zap.Logger
}

func NewProductoService(repo repositories.ProductoRepositoryInterface, logger *zap.Logger) ProductoServiceInterface {
	return &ProductoService{repo: repo, logger: logger}
}

func (s *ProductoService) GetProductos(ctx context.Context, filter types.Filter) ([]entities.Producto, uint64, error) {
	return s.repo.GetProductos(ctx, filter)
}

func (s *ProductoService) FindProducto(ctx context.Context, id uint64) (*entities.Producto, error) {
	return s.repo.FindProducto(ctx, id)
}

func (s *ProductoService) CreateProducto(ctx context.Context, payload dto.CreateProductoDTO) (*entities.Producto, error) {
	newID, err := s.repo.CreateProducto(ctx, entities.Producto{Nombre: payload.Nombre, Codigo: payload.Codigo})
	if err != nil {
		return nil, err
	}
	return s.repo.FindProducto(ctx, newID)
}

func (s *ProductoService) UpdateProducto(ctx context.Context, id uint64, payload dto.UpdateProductoDTO) (*entities.Producto, error) {
	if err := s.repo.UpdateProducto(ctx, id, entities.Producto{Nombre: payload.Nombre, Codigo: payload.Codigo}); err != nil {
		return nil, err
	}
	return s.repo.FindProducto(ctx, id)
}

func (s *ProductoService) DeleteProducto(ctx context.Context, id uint64) error {
	return s.repo.DeleteProducto(ctx, id)
}

// -----------------------------------------------------------
// CP PRODUCTOS / SERVICIOS
// -----------------------------------------------------------

type ProductoServicioServiceInterface interface {
	GetProductosServicios(ctx context.Context, filter types.Filter) ([]entities.ProductoServicio, uint64, error)
	FindProductoServicio(ctx context.Context, id uint64) (*entities.ProductoServicio, error)
	CreateProductoServicio(ctx context.Context, payload dto.CreateProductoServicioDTO) (*entities.ProductoServicio, error)
	UpdateProductoServicio(ctx context.Context, id uint64, payload dto.UpdateProductoServicioDTO) (*entities.ProductoServicio, error)
	DeleteProductoServicio(ctx context.Context, id uint64) error
}

type ProductoServicioService struct {
	repo   repositories.ProductoServicioRepositoryInterface
	logger *zap.Logger
}

func NewProductoServicioService(repo repositories.ProductoServicioRepositoryInterface, logger *zap.Logger) ProductoServicioServiceInterface {
	return &ProductoServicioService{repo: repo, logger: logger}
}

func (s *ProductoServicioService) GetProductosServicios(ctx context.Context, filter types.Filter) ([]entities.ProductoServicio, uint64, error) {
	return s.repo.GetProductosServicios(ctx, filter)
}

func (s *ProductoServicioService) FindProductoServicio(ctx context.Context, id uint64) (*entities.ProductoServicio, error) {
	return s.repo.FindProductoServicio(ctx, id)
}

func (s *ProductoServicioService) CreateProductoServicio(ctx context.Context, payload dto.CreateProductoServicioDTO) (*entities.ProductoServicio, error) {
	newID, err := s.repo.CreateProductoServicio(ctx, entities.ProductoServicio{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
		Tipo:        payload.Tipo,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindProductoServicio(ctx, newID)
}

func (s *ProductoServicioService) UpdateProductoServicio(ctx context.Context, id uint64, payload dto.UpdateProductoServicioDTO) (*entities.ProductoServicio, error) {
	err := s.repo.UpdateProductoServicio(ctx, id, entities.ProductoServicio{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
		Tipo:        payload.Tipo,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindProductoServicio(ctx, id)
}

func (s *ProductoServicioService) DeleteProductoServicio(ctx context.Context, id uint64) error {
	return s.repo.DeleteProductoServicio(ctx, id)
}

// -----------------------------------------------------------
// CP TIPOS DE SOLICITUD
// -----------------------------------------------------------

type TipoSolicitudServiceInterface interface {
	GetTiposSolicitud(ctx context.Context, filter types.Filter) ([]entities.TipoSolicitud, uint64, error)
	FindTipoSolicitud(ctx context.Context, id uint64) (*entities.TipoSolicitud, error)
	CreateTipoSolicitud(ctx context.Context, payload dto.CreateTipoSolicitudDTO) (*entities.TipoSolicitud, error)
	UpdateTipoSolicitud(ctx context.Context, id uint64, payload dto.UpdateTipoSolicitudDTO) (*entities.TipoSolicitud, error)
	DeleteTipoSolicitud(ctx context.Context, id uint64) error
}

type TipoSolicitudService struct {
	repo   repositories.TipoSolicitudRepositoryInterface
	logger *zap.Logger
}

func NewTipoSolicitudService(repo repositories.TipoSolicitudRepositoryInterface, logger *zap.Logger) TipoSolicitudServiceInterface {
	return &TipoSolicitudService{repo: repo, logger: logger}
}

func (s *TipoSolicitudService) GetTiposSolicitud(ctx context.Context, filter types.Filter) ([]entities.TipoSolicitud, uint64, error) {
	return s.repo.GetTiposSolicitud(ctx, filter)
}

func (s *TipoSolicitudService) FindTipoSolicitud(ctx context.Context, id uint64) (*entities.TipoSolicitud, error) {
	return s.repo.FindTipoSolicitud(ctx, id)
}

func (s *TipoSolicitudService) CreateTipoSolicitud(ctx context.Context, payload dto.CreateTipoSolicitudDTO) (*entities.TipoSolicitud, error) {
	newID, err := s.repo.CreateTipoSolicitud(ctx, entities.TipoSolicitud{Nombre: payload.Nombre, Descripcion: payload.Descripcion})
	if err != nil {
		return nil, err
	}
	return s.repo.FindTipoSolicitud(ctx, newID)
}

func (s *TipoSolicitudService) UpdateTipoSolicitud(ctx context.Context, id uint64, payload dto.UpdateTipoSolicitudDTO) (*entities.TipoSolicitud, error) {
	if err := s.repo.UpdateTipoSolicitud(ctx, id, entities.TipoSolicitud{Nombre: payload.Nombre, Descripcion: payload.Descripcion}); err != nil {
		return nil, err
	}
	return s.repo.FindTipoSolicitud(ctx, id)
}

func (s *TipoSolicitudService) DeleteTipoSolicitud(ctx context.Context, id uint64) error {
	return s.repo.DeleteTipoSolicitud(ctx, id)
}

// -----------------------------------------------------------
// SEDES / AREAS / DEPENDENCIAS
// -----------------------------------------------------------

type UbicacionServiceInterface interface {
	GetSedes(ctx context.Context, filter types.Filter) ([]entities.Sede, uint64, error)
	FindSede(ctx context.Context, id uint64) (*entities.Sede, error)
	CreateSede(ctx context.Context, payload dto.CreateSedeDTO) (*entities.Sede, error)
	UpdateSede(ctx context.Context, id uint64, payload dto.UpdateSedeDTO) (*entities.Sede, error)
	DeleteSede(ctx context.Context, id uint64) error

	GetAreas(ctx context.Context, filter types.Filter) ([]entities.Area, uint64, error)
	FindArea(ctx context.Context, id uint64) (*entities.Area, error)
	CreateArea(ctx context.Context, payload dto.CreateAreaDTO) (*entities.Area, error)
	UpdateArea(ctx context.Context, id uint64, payload dto.UpdateAreaDTO) (*entities.Area, error)
	DeleteArea(ctx context.Context, id uint64) error

	GetDependencias(ctx context.Context, filter types.Filter) ([]entities.Dependencia, uint64, error)
	FindDependencia(ctx context.Context, id uint64) (*entities.Dependencia, error)
	CreateDependencia(ctx context.Context, payload dto.CreateDependenciaDTO) (*entities.Dependencia, error)
	UpdateDependencia(ctx context.Context, id uint64, payload dto.UpdateDependenciaDTO) (*entities.Dependencia, error)
	DeleteDependencia(ctx context.Context, id uint64) error
}

type UbicacionService struct {
	sedeRepo        repositories.SedeRepositoryInterface
	areaRepo        repositories.AreaRepositoryInterface
	dependenciaRepo repositories.DependenciaRepositoryInterface
	logger          *zap.Logger
}

func NewUbicacionService(
	sedeRepo repositories.SedeRepositoryInterface,
	areaRepo repositories.AreaRepositoryInterface,
	dependenciaRepo repositories.DependenciaRepositoryInterface,
	logger *zap.Logger,
) UbicacionServiceInterface {
	return &UbicacionService{
		sedeRepo:        sedeRepo,
		areaRepo:        areaRepo,
		dependenciaRepo: dependenciaRepo,
		logger:          logger,
	}
}

func (s *UbicacionService) GetSedes(ctx context.Context, filter types.Filter) ([]entities.Sede, uint64, error) {
	return s.sedeRepo.GetSedes(ctx, filter)
}

func (s *UbicacionService) FindSede(ctx context.Context, id uint64) (*entities.Sede, error) {
	return s.sedeRepo.FindSede(ctx, id)
}

func (s *UbicacionService) CreateSede(ctx context.Context, payload dto.CreateSedeDTO) (*entities.Sede, error) {
	newID, err := s.sedeRepo.CreateSede(ctx, entities.Sede{Nombre: payload.Nombre, Direccion: payload.Direccion})
	if err != nil {
		return nil, err
	}
	return s.sedeRepo.FindSede(ctx, newID)
}

func (s *UbicacionService) UpdateSede(ctx context.Context, id uint64, payload dto.UpdateSedeDTO) (*entities.Sede, error) {
	if err := s.sedeRepo.UpdateSede(ctx, id, entities.Sede{Nombre: payload.Nombre, Direccion: payload.Direccion}); err != nil {
		return nil, err
	}
	return s.sedeRepo.FindSede(ctx, id)
}

func (s *UbicacionService) DeleteSede(ctx context.Context, id uint64) error {
	return s.sedeRepo.DeleteSede(ctx, id)
}

func (s *UbicacionService) GetAreas(ctx context.Context, filter types.Filter) ([]entities.Area, uint64, error) {
	return s.areaRepo.GetAreas(ctx, filter)
}

func (s *UbicacionService) FindArea(ctx context.Context, id uint64) (*entities.Area, error) {
	return s.areaRepo.FindArea(ctx, id)
}

func (s *UbicacionService) CreateArea(ctx context.Context, payload dto.CreateAreaDTO) (*entities.Area, error) {
	newID, err := s.areaRepo.CreateArea(ctx, entities.Area{Nombre: payload.Nombre})
	if err != nil {
		return nil, err
	}
	return s.areaRepo.FindArea(ctx, newID)
}

func (s *UbicacionService) UpdateArea(ctx context.Context, id uint64, payload dto.UpdateAreaDTO) (*entities.Area, error) {
	if err := s.areaRepo.UpdateArea(ctx, id, entities.Area{Nombre: payload.Nombre}); err != nil {
		return nil, err
	}
	return s.areaRepo.FindArea(ctx, id)
}

func (s *UbicacionService) DeleteArea(ctx context.Context, id uint64) error {
	return s.areaRepo.DeleteArea(ctx, id)
}

func (s *UbicacionService) GetDependencias(ctx context.Context, filter types.Filter) ([]entities.Dependencia, uint64, error) {
	return s.dependenciaRepo.GetDependencias(ctx, filter)
}

func (s *UbicacionService) FindDependencia(ctx context.Context, id uint64) (*entities.Dependencia, error) {
	return s.dependenciaRepo.FindDependencia(ctx, id)
}

func (s *UbicacionService) CreateDependencia(ctx context.Context, payload dto.CreateDependenciaDTO) (*entities.Dependencia, error) {
	if _, err := s.sedeRepo.FindSede(ctx, payload.SedeID); err != nil {
		return nil, apperrors.NewBadRequestError("La sede indicada no existe")
	}
	newID, err := s.dependenciaRepo.CreateDependencia(ctx, entities.Dependencia{
		Nombre: payload.Nombre,
		SedeID: payload.SedeID,
		AreaID: payload.AreaID,
	})
	if err != nil {
		return nil, err
	}
	return s.dependenciaRepo.FindDependencia(ctx, newID)
}

func (s *UbicacionService) UpdateDependencia(ctx context.Context, id uint64, payload dto.UpdateDependenciaDTO) (*entities.Dependencia, error) {
	if _, err := s.sedeRepo.FindSede(ctx, payload.SedeID); err != nil {
		return nil, apperrors.NewBadRequestError("La sede indicada no existe")
	}
	err := s.dependenciaRepo.UpdateDependencia(ctx, id, entities.Dependencia{
		Nombre: payload.Nombre,
		SedeID: payload.SedeID,
		AreaID: payload.AreaID,
	})
	if err != nil {
		return nil, err
	}
	return s.dependenciaRepo.FindDependencia(ctx, id)
}

func (s *UbicacionService) DeleteDependencia(ctx context.Context, id uint64) error {
	return s.dependenciaRepo.DeleteDependencia(ctx, id)
}
