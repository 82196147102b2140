package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/pkg/eventbus"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/types"
)

// ------------------------------------------------------------------
// dobles de prueba
// ------------------------------------------------------------------

type fakePedidoRepo struct {
	pedidos map[uint64]*entities.Pedido

	creados          []entities.Pedido
	etapasAplicadas  []entities.EtapaFlujo
	itemsActualizado bool
	versionRecibida  int64
}

func newFakePedidoRepo(pedidos ...*entities.Pedido) *fakePedidoRepo {
	repo := &fakePedidoRepo{pedidos: make(map[uint64]*entities.Pedido)}
	for _, p := range pedidos {
		p.Flujo = entities.DerivarFlujo(p.EstadoCompras, p.EstadoGerencia)
		repo.pedidos[p.ID] = p
	}
	return repo
}

func (r *fakePedidoRepo) GetPedidos(ctx context.Context, filter types.Filter) ([]entities.Pedido, uint64, error) {
	return nil, 0, nil
}

func (r *fakePedidoRepo) FindPedido(ctx context.Context, id uint64) (*entities.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakePedidoRepo) CreatePedido(ctx context.Context, tx pgx.Tx, pedido entities.Pedido) (uint64, error) {
	r.creados = append(r.creados, pedido)
	nuevo := pedido
	nuevo.ID = uint64(len(r.creados))
	nuevo.Consecutivo = int64(len(r.creados))
	nuevo.EstadoCompras = entities.EstadoPendiente
	nuevo.EstadoGerencia = entities.EstadoPendiente
	nuevo.Flujo = entities.DerivarFlujo(nuevo.EstadoCompras, nuevo.EstadoGerencia)
	r.pedidos[nuevo.ID] = &nuevo
	return nuevo.ID, nil
}

func (r *fakePedidoRepo) UpdatePedido(ctx context.Context, tx pgx.Tx, id uint64, pedido entities.Pedido) error {
	return nil
}

func (r *fakePedidoRepo) SoftDeletePedido(ctx context.Context, id uint64) error {
	delete(r.pedidos, id)
	return nil
}

func (r *fakePedidoRepo) ActualizarEtapa(ctx context.Context, tx pgx.Tx, id uint64, etapa entities.EtapaFlujo, estado entities.EstadoAprobacion, texto string, firma *string) error {
	r.etapasAplicadas = append(r.etapasAplicadas, etapa)
	p := r.pedidos[id]
	if etapa == entities.EtapaCompras {
		p.EstadoCompras = estado
	} else {
		p.EstadoGerencia = estado
	}
	p.Flujo = entities.DerivarFlujo(p.EstadoCompras, p.EstadoGerencia)
	return nil
}

func (r *fakePedidoRepo) UpdateItemsComprados(ctx context.Context, tx pgx.Tx, pedidoID uint64, items []entities.PedidoItem, expectedVersion int64) error {
	r.versionRecibida = expectedVersion
	p := r.pedidos[pedidoID]
	if p.Version != expectedVersion {
		return apperrors.ErrConflict
	}
	r.itemsActualizado = true
	p.Version++
	return nil
}

func (r *fakePedidoRepo) UpdateSeguimiento(ctx context.Context, id uint64, s entities.Seguimiento) error {
	r.pedidos[id].Seguimiento = s
	return nil
}

type fakeDependenciaRepo struct {
	dependencias map[uint64]*entities.Dependencia
}

func (r *fakeDependenciaRepo) GetDependencias(ctx context.Context, filter types.Filter) ([]entities.Dependencia, uint64, error) {
	return nil, 0, nil
}

func (r *fakeDependenciaRepo) FindDependencia(ctx context.Context, id uint64) (*entities.Dependencia, error) {
	d, ok := r.dependencias[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return d, nil
}

func (r *fakeDependenciaRepo) CreateDependencia(ctx context.Context, d entities.Dependencia) (uint64, error) {
	return 0, nil
}

func (r *fakeDependenciaRepo) UpdateDependencia(ctx context.Context, id uint64, d entities.Dependencia) error {
	return nil
}

func (r *fakeDependenciaRepo) DeleteDependencia(ctx context.Context, id uint64) error {
	return nil
}

type fakeUsuarioRepo struct {
	usuarios   map[uint64]*entities.Usuario
	passwords  map[uint64]string
	resetCount int
}

func (r *fakeUsuarioRepo) FindByID(ctx context.Context, id uint64) (*entities.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) FindByLogin(ctx context.Context, login string) (*entities.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Usuario == login {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUsuarioRepo) UpdatePerfil(ctx context.Context, id uint64, nombreCompleto string, email *string) error {
	return nil
}

func (r *fakeUsuarioRepo) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	if r.passwords == nil {
		r.passwords = make(map[uint64]string)
	}
	r.passwords[id] = hashedPassword
	r.resetCount++
	return nil
}

func (r *fakeUsuarioRepo) UpdateFirma(ctx context.Context, id uint64, firmaPath *string) error {
	return nil
}

func (r *fakeUsuarioRepo) UpdateFoto(ctx context.Context, id uint64, fotoPath *string) error {
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeFileStorage struct {
	guardados []string
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName, prefix string) (string, error) {
	path := prefix + "/" + originalFileName
	s.guardados = append(s.guardados, path)
	return path, nil
}

func (s *fakeFileStorage) Delete(filePath string) error { return nil }

// ------------------------------------------------------------------
// armado
// ------------------------------------------------------------------

type pedidoFixture struct {
	service  PedidoServiceInterface
	pedidos  *fakePedidoRepo
	archivos *fakeFileStorage
}

func newPedidoFixture(t *testing.T, pedidos ...*entities.Pedido) *pedidoFixture {
	t.Helper()

	pedidoRepo := newFakePedidoRepo(pedidos...)
	dependenciaRepo := &fakeDependenciaRepo{dependencias: map[uint64]*entities.Dependencia{
		10: {ID: 10, Nombre: "Almacén General", SedeID: 1},
		11: {ID: 11, Nombre: "Farmacia Central", SedeID: 1},
	}}
	firma := "uploads/firmas/guardada.png"
	usuarioRepo := &fakeUsuarioRepo{usuarios: map[uint64]*entities.Usuario{
		1: {ID: 1, Usuario: "creador", Activo: true},
		2: {ID: 2, Usuario: "comprador", Activo: true, FirmaDigital: &firma},
	}}
	archivos := &fakeFileStorage{}

	service := NewPedidoService(
		pedidoRepo, dependenciaRepo, usuarioRepo, &fakeTxManager{},
		archivos, eventbus.New(zap.NewNop()), zap.NewNop())

	return &pedidoFixture{service: service, pedidos: pedidoRepo, archivos: archivos}
}

func itemsBase() []dto.ItemPedidoDTO {
	return []dto.ItemPedidoDTO{
		{Nombre: "Resma de papel", Cantidad: 2, Unidad: "Paquete"},
		{Nombre: "Tóner", Cantidad: 1, Unidad: "Unidad"},
	}
}

func createBase() dto.CreatePedidoDTO {
	return dto.CreatePedidoDTO{
		SedeID:          1,
		DependenciaID:   10,
		TipoSolicitudID: 1,
		Observacion:     "Reposición de papelería",
		Items:           itemsBase(),
	}
}

func firmaArchivo() FirmaInput {
	return FirmaInput{File: strings.NewReader("png"), Filename: "firma.png"}
}

// ------------------------------------------------------------------
// creación
// ------------------------------------------------------------------

func TestCreatePedidoGuardaLaFirmaYPublica(t *testing.T) {
	f := newPedidoFixture(t)

	pedido, err := f.service.CreatePedido(context.Background(), 1, createBase(), firmaArchivo())

	require.NoError(t, err)
	assert.Equal(t, entities.FaseEsperandoCompras, pedido.Flujo.Fase)
	assert.Equal(t, int64(1), pedido.Consecutivo)
	require.Len(t, f.archivos.guardados, 1)
	assert.Equal(t, "firmas/firma.png", f.archivos.guardados[0])
}

func TestCreatePedidoRechazaDependenciaDeOtraSede(t *testing.T) {
	f := newPedidoFixture(t)
	payload := createBase()
	payload.SedeID = 99

	_, err := f.service.CreatePedido(context.Background(), 1, payload, firmaArchivo())

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, f.pedidos.creados)
}

func TestCreatePedidoFarmaciaExigeProducto(t *testing.T) {
	f := newPedidoFixture(t)
	payload := createBase()
	payload.DependenciaID = 11 // FARMACIA

	_, err := f.service.CreatePedido(context.Background(), 1, payload, firmaArchivo())
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Message, "catálogo de productos")

	producto := uint64(7)
	for i := range payload.Items {
		payload.Items[i].ProductoID = &producto
	}
	_, err = f.service.CreatePedido(context.Background(), 1, payload, firmaArchivo())
	assert.NoError(t, err)
}

func TestCreatePedidoSinFirmaFalla(t *testing.T) {
	f := newPedidoFixture(t)

	_, err := f.service.CreatePedido(context.Background(), 1, createBase(), FirmaInput{})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

// ------------------------------------------------------------------
// firma
// ------------------------------------------------------------------

func TestFirmaArchivoYGuardadaSonExcluyentes(t *testing.T) {
	f := newPedidoFixture(t)
	firma := firmaArchivo()
	firma.UsarFirmaGuardada = true

	_, err := f.service.CreatePedido(context.Background(), 2, createBase(), firma)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, f.archivos.guardados)
}

func TestFirmaGuardadaSinFirmaEnPerfilBloquea(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	// El usuario 1 no tiene firma guardada.
	_, err := f.service.AprobarCompras(context.Background(), 1, 1,
		dto.AprobarEtapaDTO{Justificacion: "ok"}, FirmaInput{UsarFirmaGuardada: true})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	// No se llegó a tocar el flujo.
	assert.Empty(t, f.pedidos.etapasAplicadas)
}

func TestFirmaGuardadaReutilizaLaDelPerfil(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	pedido, err := f.service.AprobarCompras(context.Background(), 2, 1,
		dto.AprobarEtapaDTO{Justificacion: "presupuesto disponible"}, FirmaInput{UsarFirmaGuardada: true})

	require.NoError(t, err)
	assert.Equal(t, entities.FaseEsperandoGerencia, pedido.Flujo.Fase)
	assert.Empty(t, f.archivos.guardados)
}

// ------------------------------------------------------------------
// transiciones
// ------------------------------------------------------------------

func TestGerenciaNoPuedeActuarAntesQueCompras(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	_, err := f.service.AprobarGerencia(context.Background(), 2, 1,
		dto.AprobarEtapaDTO{Justificacion: "ok"}, firmaArchivo())

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestRechazoEnComprasCierraElFlujo(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	pedido, err := f.service.RechazarCompras(context.Background(), 2, 1,
		dto.RechazarComprasDTO{MotivoRechazadoCompras: "sin presupuesto"})
	require.NoError(t, err)
	assert.Equal(t, entities.FaseRechazado, pedido.Flujo.Fase)
	assert.Equal(t, entities.EtapaCompras, pedido.Flujo.EtapaRechazo)

	// Ninguna etapa puede volver a actuar.
	_, err = f.service.RechazarGerencia(context.Background(), 3, 1,
		dto.RechazarGerenciaDTO{MotivoRechazadoGerencia: "tarde"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestEditarPedidoSoloAntesDeCompras(t *testing.T) {
	aprobado := &entities.Pedido{
		ID: 1, CreadorID: 1,
		SedeID: 1, DependenciaID: 10, TipoSolicitudID: 1,
		EstadoCompras:  entities.EstadoAprobado,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, aprobado)

	payload := dto.UpdatePedidoDTO{
		SedeID: 1, DependenciaID: 10, TipoSolicitudID: 1,
		Observacion: "cambio", Items: itemsBase(),
	}
	_, err := f.service.UpdatePedido(context.Background(), 1, 1, payload, FirmaInput{})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestEliminarPedidoSoloElCreador(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	err := f.service.DeletePedido(context.Background(), 2, 1)
	assert.ErrorContains(t, err, "creador")

	err = f.service.DeletePedido(context.Background(), 1, 1)
	assert.NoError(t, err)
}

// ------------------------------------------------------------------
// marcado de items
// ------------------------------------------------------------------

func TestUpdateItemsExigeComprasAprobado(t *testing.T) {
	pendiente := &entities.Pedido{
		ID: 1, CreadorID: 1, Version: 1,
		EstadoCompras:  entities.EstadoPendiente,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, pendiente)

	payload := dto.UpdateItemsDTO{
		Items:   []dto.ItemCompradoDTO{{ID: 5, Comprado: true}},
		Version: 1,
	}
	_, err := f.service.UpdateItems(context.Background(), 1, payload)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.False(t, f.pedidos.itemsActualizado)
}

func TestUpdateItemsVersionDesfasadaDevuelveConflicto(t *testing.T) {
	aprobado := &entities.Pedido{
		ID: 1, CreadorID: 1, Version: 3,
		EstadoCompras:  entities.EstadoAprobado,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, aprobado)

	payload := dto.UpdateItemsDTO{
		Items:   []dto.ItemCompradoDTO{{ID: 5, Comprado: true}},
		Version: 2, // otro cliente ya guardó
	}
	_, err := f.service.UpdateItems(context.Background(), 1, payload)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.False(t, f.pedidos.itemsActualizado)
}

func TestUpdateItemsConVersionVigente(t *testing.T) {
	aprobado := &entities.Pedido{
		ID: 1, CreadorID: 1, Version: 3,
		EstadoCompras:  entities.EstadoAprobado,
		EstadoGerencia: entities.EstadoPendiente,
	}
	f := newPedidoFixture(t, aprobado)

	payload := dto.UpdateItemsDTO{
		Items:   []dto.ItemCompradoDTO{{ID: 5, Comprado: true}},
		Version: 3,
	}
	pedido, err := f.service.UpdateItems(context.Background(), 1, payload)

	require.NoError(t, err)
	assert.True(t, f.pedidos.itemsActualizado)
	assert.Equal(t, int64(4), pedido.Version)
}
