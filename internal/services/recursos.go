package services

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/filestorage"
	"gestion-system/pkg/types"
)

// -----------------------------------------------------------
// PERSONAL
// -----------------------------------------------------------

type PersonalServiceInterface interface {
	GetPersonal(ctx context.Context, filter types.Filter) ([]entities.Personal, uint64, error)
	FindPersonal(ctx context.Context, id uint64) (*entities.Personal, error)
	CreatePersonal(ctx context.Context, payload dto.CreatePersonalDTO) (*entities.Personal, error)
	UpdatePersonal(ctx context.Context, id uint64, payload dto.UpdatePersonalDTO) (*entities.Personal, error)
	DeletePersonal(ctx context.Context, id uint64) error
}

type PersonalService struct {
	repo   repositories.PersonalRepositoryInterface
	logger *zap.Logger
}

func NewPersonalService(repo repositories.PersonalRepositoryInterface, logger *zap.Logger) PersonalServiceInterface {
	return &PersonalService{repo: repo, logger: logger}
}

func personalDesdeDTO(payload dto.CreatePersonalDTO) entities.Personal {
	activo := true
	if payload.Activo != nil {
		activo = *payload.Activo
	}
	return entities.Personal{
		Nombres:       payload.Nombres,
		Apellidos:     payload.Apellidos,
		Documento:     payload.Documento,
		Cargo:         payload.Cargo,
		DependenciaID: payload.DependenciaID,
		Email:         payload.Email,
		Telefono:      payload.Telefono,
		Activo:        activo,
	}
}

func (s *PersonalService) GetPersonal(ctx context.Context, filter types.Filter) ([]entities.Personal, uint64, error) {
	return s.repo.GetPersonal(ctx, filter)
}

func (s *PersonalService) FindPersonal(ctx context.Context, id uint64) (*entities.Personal, error) {
	return s.repo.FindPersonal(ctx, id)
}

func (s *PersonalService) CreatePersonal(ctx context.Context, payload dto.CreatePersonalDTO) (*entities.Personal, error) {
	newID, err := s.repo.CreatePersonal(ctx, personalDesdeDTO(payload))
	if err != nil {
		return nil, err
	}
	return s.repo.FindPersonal(ctx, newID)
}

func (s *PersonalService) UpdatePersonal(ctx context.Context, id uint64, payload dto.UpdatePersonalDTO) (*entities.Personal, error) {
	if err := s.repo.UpdatePersonal(ctx, id, personalDesdeDTO(payload)); err != nil {
		return nil, err
	}
	return s.repo.FindPersonal(ctx, id)
}

func (s *PersonalService) DeletePersonal(ctx context.Context, id uint64) error {
	return s.repo.DeletePersonal(ctx, id)
}

// -----------------------------------------------------------
// INVENTARIO
// -----------------------------------------------------------

type InventarioServiceInterface interface {
	GetInventario(ctx context.Context, filter types.Filter) ([]entities.Inventario, uint64, error)
	FindInventario(ctx context.Context, id uint64) (*entities.Inventario, error)
	CreateInventario(ctx context.Context, payload dto.CreateInventarioDTO) (*entities.Inventario, error)
	UpdateInventario(ctx context.Context, id uint64, payload dto.UpdateInventarioDTO) (*entities.Inventario, error)
	DeleteInventario(ctx context.Context, id uint64) error
}

type InventarioService struct {
	repo   repositories.InventarioRepositoryInterface
	logger *zap.Logger
}

func NewInventarioService(repo repositories.InventarioRepositoryInterface, logger *zap.Logger) InventarioServiceInterface {
	return &InventarioService{repo: repo, logger: logger}
}

func inventarioDesdeDTO(payload dto.CreateInventarioDTO) entities.Inventario {
	return entities.Inventario{
		Nombre:      payload.Nombre,
		Codigo:      payload.Codigo,
		Categoria:   payload.Categoria,
		Cantidad:    payload.Cantidad,
		Unidad:      payload.Unidad,
		Ubicacion:   payload.Ubicacion,
		Observacion: payload.Observacion,
	}
}

func (s *InventarioService) GetInventario(ctx context.Context, filter types.Filter) ([]entities.Inventario, uint64, error) {
	return s.repo.GetInventario(ctx, filter)
}

func (s *InventarioService) FindInventario(ctx context.Context, id uint64) (*entities.Inventario, error) {
	return s.repo.FindInventario(ctx, id)
}

func (s *InventarioService) CreateInventario(ctx context.Context, payload dto.CreateInventarioDTO) (*entities.Inventario, error) {
	newID, err := s.repo.CreateInventario(ctx, inventarioDesdeDTO(payload))
	if err != nil {
		return nil, err
	}
	return s.repo.FindInventario(ctx, newID)
}

func (s *InventarioService) UpdateInventario(ctx context.Context, id uint64, payload dto.UpdateInventarioDTO) (*entities.Inventario, error) {
	if err := s.repo.UpdateInventario(ctx, id, inventarioDesdeDTO(payload)); err != nil {
		return nil, err
	}
	return s.repo.FindInventario(ctx, id)
}

func (s *InventarioService) DeleteInventario(ctx context.Context, id uint64) error {
	return s.repo.DeleteInventario(ctx, id)
}

// -----------------------------------------------------------
// PC EQUIPOS
// -----------------------------------------------------------

type EquipoServiceInterface interface {
	GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error)
	FindEquipo(ctx context.Context, id uint64) (*entities.Equipo, error)
	CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO) (*entities.Equipo, error)
	UpdateEquipo(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error)
	DeleteEquipo(ctx context.Context, id uint64) error

	GetCaracteristicas(ctx context.Context, equipoID uint64) ([]entities.CaracteristicaTecnica, error)
	CreateCaracteristica(ctx context.Context, payload dto.CreateCaracteristicaTecnicaDTO) ([]entities.CaracteristicaTecnica, error)
	UpdateCaracteristica(ctx context.Context, id uint64, payload dto.UpdateCaracteristicaTecnicaDTO) ([]entities.CaracteristicaTecnica, error)
	DeleteCaracteristica(ctx context.Context, id uint64) error
}

type EquipoService struct {
	repo   repositories.EquipoRepositoryInterface
	logger *zap.Logger
}

func NewEquipoService(repo repositories.EquipoRepositoryInterface, logger *zap.Logger) EquipoServiceInterface {
	return &EquipoService{repo: repo, logger: logger}
}

func equipoDesdeDTO(payload dto.CreateEquipoDTO) (entities.Equipo, error) {
	estado := "activo"
	if payload.Estado != nil {
		estado = *payload.Estado
	}

	e := entities.Equipo{
		Nombre:        payload.Nombre,
		Marca:         payload.Marca,
		Modelo:        payload.Modelo,
		Serial:        payload.Serial,
		SedeID:        payload.SedeID,
		DependenciaID: payload.DependenciaID,
		Estado:        estado,
		Observacion:   payload.Observacion,
	}

	if payload.FechaAdquisicion != nil {
		fecha, err := time.Parse("2006-01-02", *payload.FechaAdquisicion)
		if err != nil {
			return e, apperrors.NewBadRequestError("La fecha de adquisición debe tener formato AAAA-MM-DD")
		}
		e.FechaAdquisicion = &fecha
	}
	return e, nil
}

func (s *EquipoService) GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error) {
	return s.repo.GetEquipos(ctx, filter)
}

func (s *EquipoService) FindEquipo(ctx context.Context, id uint64) (*entities.Equipo, error) {
	return s.repo.FindEquipo(ctx, id)
}

func (s *EquipoService) CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO) (*entities.Equipo, error) {
	equipo, err := equipoDesdeDTO(payload)
	if err != nil {
		return nil, err
	}
	newID, err := s.repo.CreateEquipo(ctx, equipo)
	if err != nil {
		return nil, err
	}
	return s.repo.FindEquipo(ctx, newID)
}

func (s *EquipoService) UpdateEquipo(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error) {
	equipo, err := equipoDesdeDTO(payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEquipo(ctx, id, equipo); err != nil {
		return nil, err
	}
	return s.repo.FindEquipo(ctx, id)
}

func (s *EquipoService) DeleteEquipo(ctx context.Context, id uint64) error {
	return s.repo.DeleteEquipo(ctx, id)
}

func (s *EquipoService) GetCaracteristicas(ctx context.Context, equipoID uint64) ([]entities.CaracteristicaTecnica, error) {
	if _, err := s.repo.FindEquipo(ctx, equipoID); err != nil {
		return nil, err
	}
	return s.repo.GetCaracteristicas(ctx, equipoID)
}

func (s *EquipoService) CreateCaracteristica(ctx context.Context, payload dto.CreateCaracteristicaTecnicaDTO) ([]entities.CaracteristicaTecnica, error) {
	if _, err := s.repo.FindEquipo(ctx, payload.EquipoID); err != nil {
		return nil, apperrors.NewBadRequestError("El equipo indicado no existe")
	}
	_, err := s.repo.CreateCaracteristica(ctx, entities.CaracteristicaTecnica{
		EquipoID:         payload.EquipoID,
		Procesador:       payload.Procesador,
		MemoriaRAM:       payload.MemoriaRAM,
		Disco:            payload.Disco,
		SistemaOperativo: payload.SistemaOperativo,
		Observacion:      payload.Observacion,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetCaracteristicas(ctx, payload.EquipoID)
}

func (s *EquipoService) UpdateCaracteristica(ctx context.Context, id uint64, payload dto.UpdateCaracteristicaTecnicaDTO) ([]entities.CaracteristicaTecnica, error) {
	err := s.repo.UpdateCaracteristica(ctx, id, entities.CaracteristicaTecnica{
		Procesador:       payload.Procesador,
		MemoriaRAM:       payload.MemoriaRAM,
		Disco:            payload.Disco,
		SistemaOperativo: payload.SistemaOperativo,
		Observacion:      payload.Observacion,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetCaracteristicas(ctx, payload.EquipoID)
}

func (s *EquipoService) DeleteCaracteristica(ctx context.Context, id uint64) error {
	return s.repo.DeleteCaracteristica(ctx, id)
}

// -----------------------------------------------------------
// PC ENTREGAS / DEVUELTOS
// -----------------------------------------------------------

type MovimientoEquipoServiceInterface interface {
	GetEntregas(ctx context.Context, filter types.Filter) ([]entities.Entrega, uint64, error)
	FindEntrega(ctx context.Context, id uint64) (*entities.Entrega, error)
	CreateEntrega(ctx context.Context, payload dto.CreateEntregaDTO, firma io.Reader, firmaFilename string) (*entities.Entrega, error)
	UpdateEntrega(ctx context.Context, id uint64, payload dto.UpdateEntregaDTO, firma io.Reader, firmaFilename string) (*entities.Entrega, error)
	DeleteEntrega(ctx context.Context, id uint64) error

	GetDevueltos(ctx context.Context, filter types.Filter) ([]entities.Devuelto, uint64, error)
	FindDevuelto(ctx context.Context, id uint64) (*entities.Devuelto, error)
	CreateDevuelto(ctx context.Context, payload dto.CreateDevueltoDTO) (*entities.Devuelto, error)
	UpdateDevuelto(ctx context.Context, id uint64, payload dto.UpdateDevueltoDTO) (*entities.Devuelto, error)
	DeleteDevuelto(ctx context.Context, id uint64) error
}

type MovimientoEquipoService struct {
	entregaRepo  repositories.EntregaRepositoryInterface
	devueltoRepo repositories.DevueltoRepositoryInterface
	equipoRepo   repositories.EquipoRepositoryInterface
	personalRepo repositories.PersonalRepositoryInterface
	fileStorage  filestorage.FileStorageInterface
	logger       *zap.Logger
}

func NewMovimientoEquipoService(
	entregaRepo repositories.EntregaRepositoryInterface,
	devueltoRepo repositories.DevueltoRepositoryInterface,
	equipoRepo repositories.EquipoRepositoryInterface,
	personalRepo repositories.PersonalRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) MovimientoEquipoServiceInterface {
	return &MovimientoEquipoService{
		entregaRepo:  entregaRepo,
		devueltoRepo: devueltoRepo,
		equipoRepo:   equipoRepo,
		personalRepo: personalRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (s *MovimientoEquipoService) validarReferencias(ctx context.Context, equipoID, personalID uint64) error {
	if _, err := s.equipoRepo.FindEquipo(ctx, equipoID); err != nil {
		return apperrors.NewBadRequestError("El equipo indicado no existe")
	}
	if _, err := s.personalRepo.FindPersonal(ctx, personalID); err != nil {
		return apperrors.NewBadRequestError("El personal indicado no existe")
	}
	return nil
}

func (s *MovimientoEquipoService) GetEntregas(ctx context.Context, filter types.Filter) ([]entities.Entrega, uint64, error) {
	return s.entregaRepo.GetEntregas(ctx, filter)
}

func (s *MovimientoEquipoService) FindEntrega(ctx context.Context, id uint64) (*entities.Entrega, error) {
	return s.entregaRepo.FindEntrega(ctx, id)
}

func (s *MovimientoEquipoService) CreateEntrega(ctx context.Context, payload dto.CreateEntregaDTO, firma io.Reader, firmaFilename string) (*entities.Entrega, error) {
	if err := s.validarReferencias(ctx, payload.EquipoID, payload.PersonalID); err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", payload.FechaEntrega)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La fecha de entrega debe tener formato AAAA-MM-DD")
	}

	entrega := entities.Entrega{
		EquipoID:     payload.EquipoID,
		PersonalID:   payload.PersonalID,
		FechaEntrega: fecha,
		Observacion:  payload.Observacion,
	}

	if firma != nil {
		path, err := s.fileStorage.Save(firma, firmaFilename, "entregas")
		if err != nil {
			return nil, err
		}
		entrega.FirmaEntrega = &path
	}

	newID, err := s.entregaRepo.CreateEntrega(ctx, entrega)
	if err != nil {
		return nil, err
	}
	return s.entregaRepo.FindEntrega(ctx, newID)
}

func (s *MovimientoEquipoService) UpdateEntrega(ctx context.Context, id uint64, payload dto.UpdateEntregaDTO, firma io.Reader, firmaFilename string) (*entities.Entrega, error) {
	if err := s.validarReferencias(ctx, payload.EquipoID, payload.PersonalID); err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", payload.FechaEntrega)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La fecha de entrega debe tener formato AAAA-MM-DD")
	}

	entrega := entities.Entrega{
		EquipoID:     payload.EquipoID,
		PersonalID:   payload.PersonalID,
		FechaEntrega: fecha,
		Observacion:  payload.Observacion,
	}

	if firma != nil {
		path, err := s.fileStorage.Save(firma, firmaFilename, "entregas")
		if err != nil {
			return nil, err
		}
		entrega.FirmaEntrega = &path
	}

	if err := s.entregaRepo.UpdateEntrega(ctx, id, entrega); err != nil {
		return nil, err
	}
	return s.entregaRepo.FindEntrega(ctx, id)
}

func (s *MovimientoEquipoService) DeleteEntrega(ctx context.Context, id uint64) error {
	return s.entregaRepo.DeleteEntrega(ctx, id)
}

func (s *MovimientoEquipoService) GetDevueltos(ctx context.Context, filter types.Filter) ([]entities.Devuelto, uint64, error) {
	return s.devueltoRepo.GetDevueltos(ctx, filter)
}

func (s *MovimientoEquipoService) FindDevuelto(ctx context.Context, id uint64) (*entities.Devuelto, error) {
	return s.devueltoRepo.FindDevuelto(ctx, id)
}

func (s *MovimientoEquipoService) CreateDevuelto(ctx context.Context, payload dto.CreateDevueltoDTO) (*entities.Devuelto, error) {
	if err := s.validarReferencias(ctx, payload.EquipoID, payload.PersonalID); err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", payload.FechaDevolucion)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La fecha de devolución debe tener formato AAAA-MM-DD")
	}

	newID, err := s.devueltoRepo.CreateDevuelto(ctx, entities.Devuelto{
		EquipoID:        payload.EquipoID,
		PersonalID:      payload.PersonalID,
		FechaDevolucion: fecha,
		Motivo:          payload.Motivo,
		EstadoEquipo:    payload.EstadoEquipo,
	})
	if err != nil {
		return nil, err
	}
	return s.devueltoRepo.FindDevuelto(ctx, newID)
}

func (s *MovimientoEquipoService) UpdateDevuelto(ctx context.Context, id uint64, payload dto.UpdateDevueltoDTO) (*entities.Devuelto, error) {
	if err := s.validarReferencias(ctx, payload.EquipoID, payload.PersonalID); err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", payload.FechaDevolucion)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La fecha de devolución debe tener formato AAAA-MM-DD")
	}

	err = s.devueltoRepo.UpdateDevuelto(ctx, id, entities.Devuelto{
		EquipoID:        payload.EquipoID,
		PersonalID:      payload.PersonalID,
		FechaDevolucion: fecha,
		Motivo:          payload.Motivo,
		EstadoEquipo:    payload.EstadoEquipo,
	})
	if err != nil {
		return nil, err
	}
	return s.devueltoRepo.FindDevuelto(ctx, id)
}

func (s *MovimientoEquipoService) DeleteDevuelto(ctx context.Context, id uint64) error {
	return s.devueltoRepo.DeleteDevuelto(ctx, id)
}
