package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gestion-system/internal/entities"
	infradb "gestion-system/internal/infrastructure/db"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/types"
)

// CAMPOS ADMITIDOS (filtro + orden)
var pedidoMap = map[string]string{
	"id":                "p.id",
	"consecutivo":       "p.consecutivo",
	"sede_id":           "p.sede_id",
	"dependencia_id":    "p.dependencia_id",
	"tipo_solicitud_id": "p.tipo_solicitud_id",
	"creador_id":        "p.creador_id",
	"estado_compras":    "p.estado_compras",
	"estado_gerencia":   "p.estado_gerencia",
	"created_at":        "p.created_at",
}

type PedidoRepositoryInterface interface {
	GetPedidos(ctx context.Context, filter types.Filter) ([]entities.Pedido, uint64, error)
	FindPedido(ctx context.Context, id uint64) (*entities.Pedido, error)
	CreatePedido(ctx context.Context, tx pgx.Tx, pedido entities.Pedido) (uint64, error)
	UpdatePedido(ctx context.Context, tx pgx.Tx, id uint64, pedido entities.Pedido) error
	SoftDeletePedido(ctx context.Context, id uint64) error
	ActualizarEtapa(ctx context.Context, tx pgx.Tx, id uint64, etapa entities.EtapaFlujo, estado entities.EstadoAprobacion, texto string, firma *string) error
	UpdateItemsComprados(ctx context.Context, tx pgx.Tx, pedidoID uint64, items []entities.PedidoItem, expectedVersion int64) error
	UpdateSeguimiento(ctx context.Context, id uint64, s entities.Seguimiento) error
}

type PedidoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPedidoRepository(storage *pgxpool.Pool, logger *zap.Logger) PedidoRepositoryInterface {
	return &PedidoRepository{storage: storage, logger: logger}
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

func scanPedido(row pgx.Row) (*entities.Pedido, error) {
	var p entities.Pedido
	var s entities.Sede
	var d entities.Dependencia
	var ts entities.TipoSolicitud
	var u entities.Usuario

	var justCompras, motivoCompras, justGerencia, motivoGerencia sql.NullString
	var firmaElab, firmaCompras, firmaGerencia sql.NullString
	var fSolicitud, fRespuesta, fAprobacion, fEnvio, obsCompras sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.Consecutivo, &p.SedeID, &p.DependenciaID, &p.TipoSolicitudID,
		&p.Observacion, &p.CreadorID, &p.EstadoCompras, &p.EstadoGerencia,
		&justCompras, &motivoCompras, &justGerencia, &motivoGerencia,
		&firmaElab, &firmaCompras, &firmaGerencia,
		&fSolicitud, &fRespuesta, &fAprobacion, &fEnvio, &obsCompras,
		&p.Version, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
		&s.ID, &s.Nombre,
		&d.ID, &d.Nombre,
		&ts.ID, &ts.Nombre,
		&u.ID, &u.NombreCompleto, &u.Usuario,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando pedido: %w", err)
	}

	asignar := func(dst **string, src sql.NullString) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	asignar(&p.JustificacionCompras, justCompras)
	asignar(&p.MotivoRechazadoCompras, motivoCompras)
	asignar(&p.JustificacionGerencia, justGerencia)
	asignar(&p.MotivoRechazadoGerencia, motivoGerencia)
	asignar(&p.FirmaElaboracion, firmaElab)
	asignar(&p.FirmaCompras, firmaCompras)
	asignar(&p.FirmaGerencia, firmaGerencia)
	asignar(&p.Seguimiento.FechaSolicitudCotizacion, fSolicitud)
	asignar(&p.Seguimiento.FechaRespuestaCotizacion, fRespuesta)
	asignar(&p.Seguimiento.FechaAprobacionPedido, fAprobacion)
	asignar(&p.Seguimiento.FechaEnvioProveedor, fEnvio)
	asignar(&p.Seguimiento.ObservacionesCompras, obsCompras)

	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Time
	}
	if s.ID > 0 {
		p.Sede = &s
	}
	if d.ID > 0 {
		p.Dependencia = &d
	}
	if ts.ID > 0 {
		p.TipoSolicitud = &ts
	}
	if u.ID > 0 {
		p.Creador = &u
	}

	// La fase del flujo se deriva una sola vez, aquí, en la frontera de
	// carga. Nadie más recombina los dos estados.
	p.Flujo = entities.DerivarFlujo(p.EstadoCompras, p.EstadoGerencia)

	return &p, nil
}

const pedidoColumns = `p.id, p.consecutivo, p.sede_id, p.dependencia_id, p.tipo_solicitud_id,
	p.observacion, p.creador_id, p.estado_compras, p.estado_gerencia,
	p.justificacion_compras, p.motivo_rechazado_compras, p.justificacion_gerencia, p.motivo_rechazado_gerencia,
	p.firma_elaboracion, p.firma_compras, p.firma_gerencia,
	p.fecha_solicitud_cotizacion, p.fecha_respuesta_cotizacion, p.fecha_aprobacion_pedido, p.fecha_envio_proveedor, p.observaciones_compras,
	p.version, p.created_at, p.updated_at, p.deleted_at,
	COALESCE(s.id, 0), COALESCE(s.nombre, ''),
	COALESCE(d.id, 0), COALESCE(d.nombre, ''),
	COALESCE(ts.id, 0), COALESCE(ts.nombre, ''),
	COALESCE(u.id, 0), COALESCE(u.nombre_completo, ''), COALESCE(u.usuario, '')`

func (r *PedidoRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(pedidoColumns).
		From("cp_pedidos AS p").
		LeftJoin("sedes s ON p.sede_id = s.id").
		LeftJoin("dependencias d ON p.dependencia_id = d.id").
		LeftJoin("cp_tipos_solicitud ts ON p.tipo_solicitud_id = ts.id").
		LeftJoin("usuarios u ON p.creador_id = u.id").
		Where(sq.Eq{"p.deleted_at": nil})
}

// -----------------------------------------------------------
// LISTADO
// -----------------------------------------------------------

func (r *PedidoRepository) GetPedidos(ctx context.Context, filter types.Filter) ([]entities.Pedido, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyExtras := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"p.observacion": pat},
				sq.ILike{"u.nombre_completo": pat},
				sq.ILike{"u.usuario": pat},
				sq.Expr("p.consecutivo::text ILIKE ?", pat),
			})
		}
		// El filtro por mes no entra en el mapa genérico: compara YYYY-MM.
		if mes, ok := filter.Filter["mes"].(string); ok && mes != "" {
			b = b.Where(sq.Expr("to_char(p.created_at, 'YYYY-MM') = ?", mes))
		}
		return b
	}

	countBuilder := applyExtras(psql.Select("COUNT(p.id)").
		From("cp_pedidos AS p").
		LeftJoin("usuarios u ON p.creador_id = u.id").
		Where(sq.Eq{"p.deleted_at": nil}))

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, pedidoMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Pedido{}, 0, nil
	}

	baseBuilder := applyExtras(r.baseSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("p.consecutivo DESC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, pedidoMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	pedidos := make([]entities.Pedido, 0, filter.Limit)
	ids := make([]uint64, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, 0, err
		}
		pedidos = append(pedidos, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.cargarItems(ctx, pedidos, ids); err != nil {
		return nil, 0, err
	}

	return pedidos, total, nil
}

// cargarItems trae las líneas de todos los pedidos del listado en una sola
// consulta.
func (r *PedidoRepository) cargarItems(ctx context.Context, pedidos []entities.Pedido, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"i.id", "i.pedido_id", "i.nombre", "i.cantidad", "i.unidad", "i.referencia", "i.producto_id", "i.comprado",
	).From("cp_pedido_items i").
		Where(sq.Eq{"i.pedido_id": ids}).
		OrderBy("i.id ASC").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	porPedido := make(map[uint64]int, len(pedidos))
	for idx := range pedidos {
		pedidos[idx].Items = []entities.PedidoItem{}
		porPedido[pedidos[idx].ID] = idx
	}

	for rows.Next() {
		item, err := scanPedidoItem(rows)
		if err != nil {
			return err
		}
		if idx, ok := porPedido[item.PedidoID]; ok {
			pedidos[idx].Items = append(pedidos[idx].Items, *item)
		}
	}
	return rows.Err()
}

func scanPedidoItem(row pgx.Row) (*entities.PedidoItem, error) {
	var item entities.PedidoItem
	var referencia sql.NullString
	var productoID sql.NullInt64

	err := row.Scan(&item.ID, &item.PedidoID, &item.Nombre, &item.Cantidad,
		&item.Unidad, &referencia, &productoID, &item.Comprado)
	if err != nil {
		return nil, fmt.Errorf("error escaneando item del pedido: %w", err)
	}

	if referencia.Valid {
		item.Referencia = &referencia.String
	}
	if productoID.Valid {
		id := uint64(productoID.Int64)
		item.ProductoID = &id
	}
	return &item, nil
}

// -----------------------------------------------------------
// FIND ONE
// -----------------------------------------------------------

func (r *PedidoRepository) FindPedido(ctx context.Context, id uint64) (*entities.Pedido, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	pedido, err := scanPedido(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	pedidos := []entities.Pedido{*pedido}
	if err := r.cargarItems(ctx, pedidos, []uint64{id}); err != nil {
		return nil, err
	}
	return &pedidos[0], nil
}

// -----------------------------------------------------------
// ESCRITURAS
// -----------------------------------------------------------

func (r *PedidoRepository) CreatePedido(ctx context.Context, tx pgx.Tx, pedido entities.Pedido) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO cp_pedidos (sede_id, dependencia_id, tipo_solicitud_id, observacion, creador_id, firma_elaboracion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		pedido.SedeID, pedido.DependenciaID, pedido.TipoSolicitudID,
		pedido.Observacion, pedido.CreadorID, pedido.FirmaElaboracion,
	).Scan(&newID)
	if err != nil {
		return 0, err
	}

	if err := r.insertarItems(ctx, tx, newID, pedido.Items); err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *PedidoRepository) insertarItems(ctx context.Context, tx pgx.Tx, pedidoID uint64, items []entities.PedidoItem) error {
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cp_pedido_items (pedido_id, nombre, cantidad, unidad, referencia, producto_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			pedidoID, item.Nombre, item.Cantidad, item.Unidad, item.Referencia, item.ProductoID,
		); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePedido reemplaza la cabecera y el conjunto completo de items. Solo
// tiene sentido mientras el pedido sigue esperando compras.
func (r *PedidoRepository) UpdatePedido(ctx context.Context, tx pgx.Tx, id uint64, pedido entities.Pedido) error {
	result, err := tx.Exec(ctx, `
		UPDATE cp_pedidos
		SET sede_id = $1, dependencia_id = $2, tipo_solicitud_id = $3, observacion = $4,
		    firma_elaboracion = COALESCE($5, firma_elaboracion),
		    version = version + 1, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL`,
		pedido.SedeID, pedido.DependenciaID, pedido.TipoSolicitudID,
		pedido.Observacion, pedido.FirmaElaboracion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cp_pedido_items WHERE pedido_id = $1`, id); err != nil {
		return err
	}
	return r.insertarItems(ctx, tx, id, pedido.Items)
}

func (r *PedidoRepository) SoftDeletePedido(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE cp_pedidos SET deleted_at = NOW(), version = version + 1 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ActualizarEtapa persiste una transición de la vía indicada. Para
// aprobaciones, texto es la justificación; para rechazos, el motivo.
func (r *PedidoRepository) ActualizarEtapa(ctx context.Context, tx pgx.Tx, id uint64, etapa entities.EtapaFlujo, estado entities.EstadoAprobacion, texto string, firma *string) error {
	var query string
	switch {
	case etapa == entities.EtapaCompras && estado == entities.EstadoAprobado:
		query = `UPDATE cp_pedidos SET estado_compras = 'aprobado', justificacion_compras = $1,
			firma_compras = $2, version = version + 1, updated_at = NOW()
			WHERE id = $3 AND deleted_at IS NULL`
	case etapa == entities.EtapaCompras && estado == entities.EstadoRechazado:
		query = `UPDATE cp_pedidos SET estado_compras = 'rechazado', motivo_rechazado_compras = $1,
			firma_compras = $2, version = version + 1, updated_at = NOW()
			WHERE id = $3 AND deleted_at IS NULL`
	case etapa == entities.EtapaGerencia && estado == entities.EstadoAprobado:
		query = `UPDATE cp_pedidos SET estado_gerencia = 'aprobado', justificacion_gerencia = $1,
			firma_gerencia = $2, version = version + 1, updated_at = NOW()
			WHERE id = $3 AND deleted_at IS NULL`
	case etapa == entities.EtapaGerencia && estado == entities.EstadoRechazado:
		query = `UPDATE cp_pedidos SET estado_gerencia = 'rechazado', motivo_rechazado_gerencia = $1,
			firma_gerencia = $2, version = version + 1, updated_at = NOW()
			WHERE id = $3 AND deleted_at IS NULL`
	default:
		return fmt.Errorf("transición no soportada: etapa=%s estado=%s", etapa, estado)
	}

	result, err := tx.Exec(ctx, query, texto, firma, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateItemsComprados guarda el lote de flags de comprado con control de
// versión: si la versión leída por el cliente ya no es la actual, no se toca
// nada y se devuelve conflicto.
func (r *PedidoRepository) UpdateItemsComprados(ctx context.Context, tx pgx.Tx, pedidoID uint64, items []entities.PedidoItem, expectedVersion int64) error {
	result, err := tx.Exec(ctx, `
		UPDATE cp_pedidos SET version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2 AND deleted_at IS NULL`,
		pedidoID, expectedVersion,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Distinguimos "no existe" de "versión obsoleta".
		var existe bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM cp_pedidos WHERE id = $1 AND deleted_at IS NULL)`,
			pedidoID,
		).Scan(&existe); err != nil {
			return err
		}
		if !existe {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}

	for _, item := range items {
		result, err := tx.Exec(ctx,
			`UPDATE cp_pedido_items SET comprado = $1 WHERE id = $2 AND pedido_id = $3`,
			item.Comprado, item.ID, pedidoID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.NewBadRequestError(
				fmt.Sprintf("El item %d no pertenece al pedido", item.ID))
		}
	}
	return nil
}

func (r *PedidoRepository) UpdateSeguimiento(ctx context.Context, id uint64, s entities.Seguimiento) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE cp_pedidos
		SET fecha_solicitud_cotizacion = $1, fecha_respuesta_cotizacion = $2,
		    fecha_aprobacion_pedido = $3, fecha_envio_proveedor = $4,
		    observaciones_compras = $5, version = version + 1, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL`,
		s.FechaSolicitudCotizacion, s.FechaRespuestaCotizacion,
		s.FechaAprobacionPedido, s.FechaEnvioProveedor,
		s.ObservacionesCompras, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
