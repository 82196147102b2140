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

var productoMap = map[string]string{
	"id":     "p.id",
	"nombre": "p.nombre",
	"codigo": "p.codigo",
}

var productoServicioMap = map[string]string{
	"id":     "ps.id",
	"nombre": "ps.nombre",
	"tipo":   "ps.tipo",
}

var tipoSolicitudMap = map[string]string{
	"id":     "ts.id",
	"nombre": "ts.nombre",
}

// -----------------------------------------------------------
// CP PRODUCTOS
// -----------------------------------------------------------

type ProductoRepositoryInterface interface {
	GetProductos(ctx context.Context, filter types.Filter) ([]entities.Producto, uint64, error)
	FindProducto(ctx context.Context, id uint64) (*entities.Producto, error)
	CreateProducto(ctx context.Context, p entities.Producto) (uint64, error)
	UpdateProducto(ctx context.Context, id uint64, p entities.Producto) error
	DeleteProducto(ctx context.Context, id uint64) error
}

type ProductoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProductoRepository(storage *pgxpool.Pool, logger *zap.Logger) ProductoRepositoryInterface {
	return &ProductoRepository{storage: storage, logger: logger}
}

func scanProducto(row pgx.Row) (*entities.Producto, error) {
	var p entities.Producto
	var codigo sql.NullString

	err := row.Scan(&p.ID, &p.Nombre, &codigo, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando producto: %w", err)
	}
	if codigo.Valid {
		p.Codigo = &codigo.String
	}
	return &p, nil
}

func (r *ProductoRepository) GetProductos(ctx context.Context, filter types.Filter) ([]entities.Producto, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{sq.ILike{"p.nombre": pat}, sq.ILike{"p.codigo": pat}})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(p.id)").From("cp_productos AS p"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, productoMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Producto{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"p.id", "p.nombre", "p.codigo", "p.created_at", "p.updated_at",
	).From("cp_productos AS p"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("p.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, productoMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	productos := make([]entities.Producto, 0, filter.Limit)
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, 0, err
		}
		productos = append(productos, *p)
	}
	return productos, total, rows.Err()
}

func (r *ProductoRepository) FindProducto(ctx context.Context, id uint64) (*entities.Producto, error) {
	return scanProducto(r.storage.QueryRow(ctx,
		`SELECT id, nombre, codigo, created_at, updated_at FROM cp_productos WHERE id = $1`, id))
}

func (r *ProductoRepository) CreateProducto(ctx context.Context, p entities.Producto) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO cp_productos (nombre, codigo) VALUES ($1, $2) RETURNING id`,
		p.Nombre, p.Codigo,
	).Scan(&newID)
	return newID, err
}

func (r *ProductoRepository) UpdateProducto(ctx context.Context, id uint64, p entities.Producto) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE cp_productos SET nombre = $1, codigo = $2, updated_at = NOW() WHERE id = $3`,
		p.Nombre, p.Codigo, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductoRepository) DeleteProducto(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM cp_productos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// CP PRODUCTOS / SERVICIOS
// -----------------------------------------------------------

type ProductoServicioRepositoryInterface interface {
	GetProductosServicios(ctx context.Context, filter types.Filter) ([]entities.ProductoServicio, uint64, error)
	FindProductoServicio(ctx context.Context, id uint64) (*entities.ProductoServicio, error)
	CreateProductoServicio(ctx context.Context, ps entities.ProductoServicio) (uint64, error)
	UpdateProductoServicio(ctx context.Context, id uint64, ps entities.ProductoServicio) error
	DeleteProductoServicio(ctx context.Context, id uint64) error
}

type ProductoServicioRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProductoServicioRepository(storage *pgxpool.Pool, logger *zap.Logger) ProductoServicioRepositoryInterface {
	return &ProductoServicioRepository{storage: storage, logger: logger}
}

func scanProductoServicio(row pgx.Row) (*entities.ProductoServicio, error) {
	var ps entities.ProductoServicio
	var descripcion sql.NullString

	err := row.Scan(&ps.ID, &ps.Nombre, &descripcion, &ps.Tipo, &ps.CreatedAt, &ps.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando producto/servicio: %w", err)
	}
	if descripcion.Valid {
		ps.Descripcion = &descripcion.String
	}
	return &ps, nil
}

func (r *ProductoServicioRepository) GetProductosServicios(ctx context.Context, filter types.Filter) ([]entities.ProductoServicio, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"ps.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(ps.id)").From("cp_productos_servicios AS ps"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, productoServicioMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.ProductoServicio{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"ps.id", "ps.nombre", "ps.descripcion", "ps.tipo", "ps.created_at", "ps.updated_at",
	).From("cp_productos_servicios AS ps"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("ps.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, productoServicioMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	lista := make([]entities.ProductoServicio, 0, filter.Limit)
	for rows.Next() {
		ps, err := scanProductoServicio(rows)
		if err != nil {
			return nil, 0, err
		}
		lista = append(lista, *ps)
	}
	return lista, total, rows.Err()
}

func (r *ProductoServicioRepository) FindProductoServicio(ctx context.Context, id uint64) (*entities.ProductoServicio, error) {
	return scanProductoServicio(r.storage.QueryRow(ctx,
		`SELECT id, nombre, descripcion, tipo, created_at, updated_at FROM cp_productos_servicios WHERE id = $1`, id))
}

func (r *ProductoServicioRepository) CreateProductoServicio(ctx context.Context, ps entities.ProductoServicio) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO cp_productos_servicios (nombre, descripcion, tipo) VALUES ($1, $2, $3) RETURNING id`,
		ps.Nombre, ps.Descripcion, ps.Tipo,
	).Scan(&newID)
	return newID, err
}

func (r *ProductoServicioRepository) UpdateProductoServicio(ctx context.Context, id uint64, ps entities.ProductoServicio) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE cp_productos_servicios SET nombre = $1, descripcion = $2, tipo = $3, updated_at = NOW() WHERE id = $4`,
		ps.Nombre, ps.Descripcion, ps.Tipo, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductoServicioRepository) DeleteProductoServicio(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM cp_productos_servicios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// CP TIPOS DE SOLICITUD
// -----------------------------------------------------------

type TipoSolicitudRepositoryInterface interface {
	GetTiposSolicitud(ctx context.Context, filter types.Filter) ([]entities.TipoSolicitud, uint64, error)
	FindTipoSolicitud(ctx context.Context, id uint64) (*entities.TipoSolicitud, error)
	CreateTipoSolicitud(ctx context.Context, ts entities.TipoSolicitud) (uint64, error)
	UpdateTipoSolicitud(ctx context.Context, id uint64, ts entities.TipoSolicitud) error
	DeleteTipoSolicitud(ctx context.Context, id uint64) error
}

type TipoSolicitudRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTipoSolicitudRepository(storage *pgxpool.Pool, logger *zap.Logger) TipoSolicitudRepositoryInterface {
	return &TipoSolicitudRepository{storage: storage, logger: logger}
}

func scanTipoSolicitud(row pgx.Row) (*entities.TipoSolicitud, error) {
	var ts entities.TipoSolicitud
	var descripcion sql.NullString

	err := row.Scan(&ts.ID, &ts.Nombre, &descripcion, &ts.CreatedAt, &ts.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando tipo de solicitud: %w", err)
	}
	if descripcion.Valid {
		ts.Descripcion = &descripcion.String
	}
	return &ts, nil
}

func (r *TipoSolicitudRepository) GetTiposSolicitud(ctx context.Context, filter types.Filter) ([]entities.TipoSolicitud, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"ts.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(ts.id)").From("cp_tipos_solicitud AS ts"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, tipoSolicitudMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.TipoSolicitud{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"ts.id", "ts.nombre", "ts.descripcion", "ts.created_at", "ts.updated_at",
	).From("cp_tipos_solicitud AS ts"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("ts.id ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, tipoSolicitudMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tipos := make([]entities.TipoSolicitud, 0, filter.Limit)
	for rows.Next() {
		ts, err := scanTipoSolicitud(rows)
		if err != nil {
			return nil, 0, err
		}
		tipos = append(tipos, *ts)
	}
	return tipos, total, rows.Err()
}

func (r *TipoSolicitudRepository) FindTipoSolicitud(ctx context.Context, id uint64) (*entities.TipoSolicitud, error) {
	return scanTipoSolicitud(r.storage.QueryRow(ctx,
		`SELECT id, nombre, descripcion, created_at, updated_at FROM cp_tipos_solicitud WHERE id = $1`, id))
}

func (r *TipoSolicitudRepository) CreateTipoSolicitud(ctx context.Context, ts entities.TipoSolicitud) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO cp_tipos_solicitud (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		ts.Nombre, ts.Descripcion,
	).Scan(&newID)
	return newID, err
}

func (r *TipoSolicitudRepository) UpdateTipoSolicitud(ctx context.Context, id uint64, ts entities.TipoSolicitud) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE cp_tipos_solicitud SET nombre = $1, descripcion = $2, updated_at = NOW() WHERE id = $3`,
		ts.Nombre, ts.Descripcion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TipoSolicitudRepository) DeleteTipoSolicitud(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM cp_tipos_solicitud WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
