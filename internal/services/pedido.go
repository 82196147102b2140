package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/events"
	"gestion-system/internal/repositories"
	"gestion-system/pkg/eventbus"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/filestorage"
	"gestion-system/pkg/types"
)

// FirmaInput es la firma tal como llega del cliente: un archivo dibujado o la
// orden de reutilizar la firma guardada del usuario. Nunca ambas cosas.
type FirmaInput struct {
	File              io.Reader
	Filename          string
	UsarFirmaGuardada bool
}

type PedidoServiceInterface interface {
	GetPedidos(ctx context.Context, filter types.Filter) ([]entities.Pedido, uint64, error)
	FindPedido(ctx context.Context, id uint64) (*entities.Pedido, error)
	CreatePedido(ctx context.Context, actorID uint64, payload dto.CreatePedidoDTO, firma FirmaInput) (*entities.Pedido, error)
	UpdatePedido(ctx context.Context, actorID uint64, id uint64, payload dto.UpdatePedidoDTO, firma FirmaInput) (*entities.Pedido, error)
	DeletePedido(ctx context.Context, actorID uint64, id uint64) error

	AprobarCompras(ctx context.Context, actorID uint64, id uint64, payload dto.AprobarEtapaDTO, firma FirmaInput) (*entities.Pedido, error)
	RechazarCompras(ctx context.Context, actorID uint64, id uint64, payload dto.RechazarComprasDTO) (*entities.Pedido, error)
	AprobarGerencia(ctx context.Context, actorID uint64, id uint64, payload dto.AprobarEtapaDTO, firma FirmaInput) (*entities.Pedido, error)
	RechazarGerencia(ctx context.Context, actorID uint64, id uint64, payload dto.RechazarGerenciaDTO) (*entities.Pedido, error)

	UpdateItems(ctx context.Context, id uint64, payload dto.UpdateItemsDTO) (*entities.Pedido, error)
	UpdateSeguimiento(ctx context.Context, id uint64, payload dto.SeguimientoDTO) (*entities.Pedido, error)
}

type PedidoService struct {
	pedidoRepo      repositories.PedidoRepositoryInterface
	dependenciaRepo repositories.DependenciaRepositoryInterface
	usuarioRepo     repositories.UsuarioRepositoryInterface
	txManager       repositories.TxManagerInterface
	fileStorage     filestorage.FileStorageInterface
	eventBus        *eventbus.Bus
	logger          *zap.Logger
}

func NewPedidoService(
	pedidoRepo repositories.PedidoRepositoryInterface,
	dependenciaRepo repositories.DependenciaRepositoryInterface,
	usuarioRepo repositories.UsuarioRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	eventBus *eventbus.Bus,
	logger *zap.Logger,
) PedidoServiceInterface {
	return &PedidoService{
		pedidoRepo:      pedidoRepo,
		dependenciaRepo: dependenciaRepo,
		usuarioRepo:     usuarioRepo,
		txManager:       txManager,
		fileStorage:     fileStorage,
		eventBus:        eventBus,
		logger:          logger,
	}
}

func (s *PedidoService) GetPedidos(ctx context.Context, filter types.Filter) ([]entities.Pedido, uint64, error) {
	return s.pedidoRepo.GetPedidos(ctx, filter)
}

func (s *PedidoService) FindPedido(ctx context.Context, id uint64) (*entities.Pedido, error) {
	return s.pedidoRepo.FindPedido(ctx, id)
}

// validarCabecera comprueba la coherencia sede/dependencia y la regla de
// farmacia sobre los items, y devuelve la dependencia ya cargada.
func (s *PedidoService) validarCabecera(ctx context.Context, sedeID, dependenciaID uint64, items []dto.ItemPedidoDTO) (*entities.Dependencia, error) {
	dependencia, err := s.dependenciaRepo.FindDependencia(ctx, dependenciaID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La dependencia indicada no existe")
	}
	if dependencia.SedeID != sedeID {
		return nil, apperrors.NewBadRequestError("La dependencia no pertenece a la sede seleccionada")
	}

	// Los pedidos de farmacia deben salir del catálogo de productos: cada
	// línea tiene que referenciar un producto registrado.
	if strings.Contains(strings.ToUpper(dependencia.Nombre), "FARMACIA") {
		for i, item := range items {
			if item.ProductoID == nil {
				return nil, apperrors.NewBadRequestError(
					fmt.Sprintf("El item %d debe seleccionarse del catálogo de productos de farmacia", i+1))
			}
		}
	}

	return dependencia, nil
}

// resolverFirma convierte la entrada de firma en la ruta persistida. Archivo
// y reutilización son mutuamente excluyentes; si requerida es true, tiene que
// llegar una de las dos.
func (s *PedidoService) resolverFirma(ctx context.Context, userID uint64, firma FirmaInput, requerida bool) (*string, error) {
	if firma.File != nil && firma.UsarFirmaGuardada {
		return nil, apperrors.NewBadRequestError(
			"Envíe el archivo de la firma o use la firma guardada, no ambas cosas")
	}

	if firma.File != nil {
		path, err := s.fileStorage.Save(firma.File, firma.Filename, "firmas")
		if err != nil {
			s.logger.Error("Error guardando la firma del pedido", zap.Error(err))
			return nil, err
		}
		return &path, nil
	}

	if firma.UsarFirmaGuardada {
		usuario, err := s.usuarioRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !usuario.TieneFirmaGuardada() {
			return nil, apperrors.NewBadRequestError(
				"El usuario no tiene una firma guardada; cárguela primero en su perfil")
		}
		return usuario.FirmaDigital, nil
	}

	if requerida {
		return nil, apperrors.NewBadRequestError("La firma es obligatoria para esta operación")
	}
	return nil, nil
}

func itemsDesdeDTO(items []dto.ItemPedidoDTO) []entities.PedidoItem {
	out := make([]entities.PedidoItem, 0, len(items))
	for _, item := range items {
		out = append(out, entities.PedidoItem{
			Nombre:     item.Nombre,
			Cantidad:   item.Cantidad,
			Unidad:     item.Unidad,
			Referencia: item.Referencia,
			ProductoID: item.ProductoID,
		})
	}
	return out
}

func (s *PedidoService) CreatePedido(ctx context.Context, actorID uint64, payload dto.CreatePedidoDTO, firma FirmaInput) (*entities.Pedido, error) {
	if _, err := s.validarCabecera(ctx, payload.SedeID, payload.DependenciaID, payload.Items); err != nil {
		return nil, err
	}

	firmaPath, err := s.resolverFirma(ctx, actorID, firma, true)
	if err != nil {
		return nil, err
	}

	pedido := entities.Pedido{
		SedeID:           payload.SedeID,
		DependenciaID:    payload.DependenciaID,
		TipoSolicitudID:  payload.TipoSolicitudID,
		Observacion:      payload.Observacion,
		CreadorID:        actorID,
		FirmaElaboracion: firmaPath,
		Items:            itemsDesdeDTO(payload.Items),
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.pedidoRepo.CreatePedido(ctx, tx, pedido)
		if err != nil {
			return err
		}
		newID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	creado, err := s.pedidoRepo.FindPedido(ctx, newID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.PedidoCreadoEvent{Pedido: creado, ActorID: actorID})
	s.logger.Info("Pedido creado",
		zap.Uint64("pedido_id", creado.ID),
		zap.Int64("consecutivo", creado.Consecutivo),
		zap.Uint64("actor_id", actorID),
	)
	return creado, nil
}

func (s *PedidoService) UpdatePedido(ctx context.Context, actorID uint64, id uint64, payload dto.UpdatePedidoDTO, firma FirmaInput) (*entities.Pedido, error) {
	actual, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	// Una vez que compras actuó, la cabecera y los items quedan congelados.
	if actual.Flujo.Fase != entities.FaseEsperandoCompras {
		return nil, apperrors.NewBadRequestError(
			"El pedido ya entró al flujo de aprobación y no puede editarse")
	}
	if actual.CreadorID != actorID {
		return nil, apperrors.NewForbiddenError("Solo el creador puede editar el pedido")
	}

	if _, err := s.validarCabecera(ctx, payload.SedeID, payload.DependenciaID, payload.Items); err != nil {
		return nil, err
	}

	firmaPath, err := s.resolverFirma(ctx, actorID, firma, false)
	if err != nil {
		return nil, err
	}

	pedido := entities.Pedido{
		SedeID:           payload.SedeID,
		DependenciaID:    payload.DependenciaID,
		TipoSolicitudID:  payload.TipoSolicitudID,
		Observacion:      payload.Observacion,
		FirmaElaboracion: firmaPath,
		Items:            itemsDesdeDTO(payload.Items),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.pedidoRepo.UpdatePedido(ctx, tx, id, pedido)
	})
	if err != nil {
		return nil, err
	}

	return s.pedidoRepo.FindPedido(ctx, id)
}

func (s *PedidoService) DeletePedido(ctx context.Context, actorID uint64, id uint64) error {
	actual, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return err
	}
	if actual.Flujo.Fase != entities.FaseEsperandoCompras {
		return apperrors.NewBadRequestError(
			"El pedido ya entró al flujo de aprobación y no puede eliminarse")
	}
	if actual.CreadorID != actorID {
		return apperrors.NewForbiddenError("Solo el creador puede eliminar el pedido")
	}

	if err := s.pedidoRepo.SoftDeletePedido(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Pedido eliminado", zap.Uint64("pedido_id", id), zap.Uint64("actor_id", actorID))
	return nil
}

// transicionar ejecuta una transición del flujo validando que la etapa
// solicitada sea la etapa activa del pedido.
func (s *PedidoService) transicionar(ctx context.Context, actorID, id uint64, etapa entities.EtapaFlujo, estado entities.EstadoAprobacion, texto string, firma *string) (*entities.Pedido, error) {
	actual, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	activa, ok := actual.Flujo.EtapaActiva()
	if !ok {
		return nil, apperrors.NewBadRequestError("El flujo de aprobación del pedido ya concluyó")
	}
	if activa != etapa {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("El pedido está esperando a %s; la etapa %s no puede actuar todavía", activa, etapa))
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.pedidoRepo.ActualizarEtapa(ctx, tx, id, etapa, estado, texto, firma)
	})
	if err != nil {
		return nil, err
	}

	actualizado, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.PedidoTransicionEvent{
		Pedido:  actualizado,
		Etapa:   etapa,
		Estado:  estado,
		ActorID: actorID,
	})
	s.logger.Info("Transición del pedido",
		zap.Uint64("pedido_id", id),
		zap.String("etapa", string(etapa)),
		zap.String("estado", string(estado)),
		zap.Uint64("actor_id", actorID),
	)
	return actualizado, nil
}

func (s *PedidoService) AprobarCompras(ctx context.Context, actorID uint64, id uint64, payload dto.AprobarEtapaDTO, firma FirmaInput) (*entities.Pedido, error) {
	firmaPath, err := s.resolverFirma(ctx, actorID, firma, true)
	if err != nil {
		return nil, err
	}
	return s.transicionar(ctx, actorID, id, entities.EtapaCompras, entities.EstadoAprobado, payload.Justificacion, firmaPath)
}

func (s *PedidoService) RechazarCompras(ctx context.Context, actorID uint64, id uint64, payload dto.RechazarComprasDTO) (*entities.Pedido, error) {
	return s.transicionar(ctx, actorID, id, entities.EtapaCompras, entities.EstadoRechazado, payload.MotivoRechazadoCompras, nil)
}

func (s *PedidoService) AprobarGerencia(ctx context.Context, actorID uint64, id uint64, payload dto.AprobarEtapaDTO, firma FirmaInput) (*entities.Pedido, error) {
	firmaPath, err := s.resolverFirma(ctx, actorID, firma, true)
	if err != nil {
		return nil, err
	}
	return s.transicionar(ctx, actorID, id, entities.EtapaGerencia, entities.EstadoAprobado, payload.Justificacion, firmaPath)
}

func (s *PedidoService) RechazarGerencia(ctx context.Context, actorID uint64, id uint64, payload dto.RechazarGerenciaDTO) (*entities.Pedido, error) {
	return s.transicionar(ctx, actorID, id, entities.EtapaGerencia, entities.EstadoRechazado, payload.MotivoRechazadoGerencia, nil)
}

// UpdateItems guarda el lote de flags de comprado. Solo procede cuando la vía
// de compras ya aprobó, y exige que la versión leída por el cliente siga
// vigente; un desfase devuelve conflicto sin tocar nada.
func (s *PedidoService) UpdateItems(ctx context.Context, id uint64, payload dto.UpdateItemsDTO) (*entities.Pedido, error) {
	actual, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actual.PuedeMarcarItems() {
		return nil, apperrors.NewBadRequestError(
			"Los items solo pueden marcarse cuando compras ya aprobó el pedido")
	}

	items := make([]entities.PedidoItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, entities.PedidoItem{ID: item.ID, Comprado: item.Comprado})
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.pedidoRepo.UpdateItemsComprados(ctx, tx, id, items, payload.Version)
	})
	if err != nil {
		return nil, err
	}

	return s.pedidoRepo.FindPedido(ctx, id)
}

// UpdateSeguimiento aplica el PATCH de los campos libres de seguimiento. Los
// campos ausentes o nulos conservan su valor; una cadena vacía limpia el
// campo.
func (s *PedidoService) UpdateSeguimiento(ctx context.Context, id uint64, payload dto.SeguimientoDTO) (*entities.Pedido, error) {
	actual, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	seguimiento := actual.Seguimiento
	aplicar := func(dst **string, src null.String) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	aplicar(&seguimiento.FechaSolicitudCotizacion, payload.FechaSolicitudCotizacion)
	aplicar(&seguimiento.FechaRespuestaCotizacion, payload.FechaRespuestaCotizacion)
	aplicar(&seguimiento.FechaAprobacionPedido, payload.FechaAprobacionPedido)
	aplicar(&seguimiento.FechaEnvioProveedor, payload.FechaEnvioProveedor)
	aplicar(&seguimiento.ObservacionesCompras, payload.ObservacionesCompras)

	if err := s.pedidoRepo.UpdateSeguimiento(ctx, id, seguimiento); err != nil {
		return nil, err
	}
	return s.pedidoRepo.FindPedido(ctx, id)
}
