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

var sedeMap = map[string]string{
	"id":     "s.id",
	"nombre": "s.nombre",
}

var areaMap = map[string]string{
	"id":     "a.id",
	"nombre": "a.nombre",
}

var dependenciaMap = map[string]string{
	"id":      "d.id",
	"nombre":  "d.nombre",
	"sede_id": "d.sede_id",
	"area_id": "d.area_id",
}

// -----------------------------------------------------------
// SEDES
// -----------------------------------------------------------

type SedeRepositoryInterface interface {
	GetSedes(ctx context.Context, filter types.Filter) ([]entities.Sede, uint64, error)
	FindSede(ctx context.Context, id uint64) (*entities.Sede, error)
	CreateSede(ctx context.Context, s entities.Sede) (uint64, error)
	UpdateSede(ctx context.Context, id uint64, s entities.Sede) error
	DeleteSede(ctx context.Context, id uint64) error
}

type SedeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSedeRepository(storage *pgxpool.Pool, logger *zap.Logger) SedeRepositoryInterface {
	return &SedeRepository{storage: storage, logger: logger}
}

func scanSede(row pgx.Row) (*entities.Sede, error) {
	var s entities.Sede
	var direccion sql.NullString

	err := row.Scan(&s.ID, &s.Nombre, &direccion, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando sede: %w", err)
	}
	if direccion.Valid {
		s.Direccion = &direccion.String
	}
	return &s, nil
}

func (r *SedeRepository) GetSedes(ctx context.Context, filter types.Filter) ([]entities.Sede, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"s.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(s.id)").From("sedes AS s"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, sedeMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Sede{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"s.id", "s.nombre", "s.direccion", "s.created_at", "s.updated_at",
	).From("sedes AS s"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("s.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, sedeMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sedes := make([]entities.Sede, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSede(rows)
		if err != nil {
			return nil, 0, err
		}
		sedes = append(sedes, *s)
	}
	return sedes, total, rows.Err()
}

func (r *SedeRepository) FindSede(ctx context.Context, id uint64) (*entities.Sede, error) {
	return scanSede(r.storage.QueryRow(ctx,
		`SELECT id, nombre, direccion, created_at, updated_at FROM sedes WHERE id = $1`, id))
}

func (r *SedeRepository) CreateSede(ctx context.Context, s entities.Sede) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO sedes (nombre, direccion) VALUES ($1, $2) RETURNING id`,
		s.Nombre, s.Direccion,
	).Scan(&newID)
	return newID, err
}

func (r *SedeRepository) UpdateSede(ctx context.Context, id uint64, s entities.Sede) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE sedes SET nombre = $1, direccion = $2, updated_at = NOW() WHERE id = $3`,
		s.Nombre, s.Direccion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SedeRepository) DeleteSede(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM sedes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// AREAS
// -----------------------------------------------------------

type AreaRepositoryInterface interface {
	GetAreas(ctx context.Context, filter types.Filter) ([]entities.Area, uint64, error)
	FindArea(ctx context.Context, id uint64) (*entities.Area, error)
	CreateArea(ctx context.Context, a entities.Area) (uint64, error)
	UpdateArea(ctx context.Context, id uint64, a entities.Area) error
	DeleteArea(ctx context.Context, id uint64) error
}

type AreaRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAreaRepository(storage *pgxpool.Pool, logger *zap.Logger) AreaRepositoryInterface {
	return &AreaRepository{storage: storage, logger: logger}
}

func scanArea(row pgx.Row) (*entities.Area, error) {
	var a entities.Area

	err := row.Scan(&a.ID, &a.Nombre, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando área: %w", err)
	}
	return &a, nil
}

func (r *AreaRepository) GetAreas(ctx context.Context, filter types.Filter) ([]entities.Area, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"a.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(a.id)").From("areas AS a"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, areaMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Area{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"a.id", "a.nombre", "a.created_at", "a.updated_at",
	).From("areas AS a"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("a.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, areaMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	areas := make([]entities.Area, 0, filter.Limit)
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, 0, err
		}
		areas = append(areas, *a)
	}
	return areas, total, rows.Err()
}

func (r *AreaRepository) FindArea(ctx context.Context, id uint64) (*entities.Area, error) {
	return scanArea(r.storage.QueryRow(ctx,
		`SELECT id, nombre, created_at, updated_at FROM areas WHERE id = $1`, id))
}

func (r *AreaRepository) CreateArea(ctx context.Context, a entities.Area) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO areas (nombre) VALUES ($1) RETURNING id`, a.Nombre,
	).Scan(&newID)
	return newID, err
}

func (r *AreaRepository) UpdateArea(ctx context.Context, id uint64, a entities.Area) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE areas SET nombre = $1, updated_at = NOW() WHERE id = $2`, a.Nombre, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AreaRepository) DeleteArea(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// DEPENDENCIAS
// -----------------------------------------------------------

type DependenciaRepositoryInterface interface {
	GetDependencias(ctx context.Context, filter types.Filter) ([]entities.Dependencia, uint64, error)
	FindDependencia(ctx context.Context, id uint64) (*entities.Dependencia, error)
	CreateDependencia(ctx context.Context, d entities.Dependencia) (uint64, error)
	UpdateDependencia(ctx context.Context, id uint64, d entities.Dependencia) error
	DeleteDependencia(ctx context.Context, id uint64) error
}

type DependenciaRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDependenciaRepository(storage *pgxpool.Pool, logger *zap.Logger) DependenciaRepositoryInterface {
	return &DependenciaRepository{storage: storage, logger: logger}
}

func scanDependencia(row pgx.Row) (*entities.Dependencia, error) {
	var d entities.Dependencia
	var s entities.Sede
	var areaID sql.NullInt64
	var areaNombre sql.NullString

	err := row.Scan(&d.ID, &d.Nombre, &d.SedeID, &areaID, &d.CreatedAt, &d.UpdatedAt,
		&s.ID, &s.Nombre, &areaNombre)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando dependencia: %w", err)
	}

	if areaID.Valid {
		id := uint64(areaID.Int64)
		d.AreaID = &id
		if areaNombre.Valid {
			d.Area = &entities.Area{ID: id, Nombre: areaNombre.String}
		}
	}
	if s.ID > 0 {
		d.Sede = &s
	}
	return &d, nil
}

func (r *DependenciaRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(
		"d.id", "d.nombre", "d.sede_id", "d.area_id", "d.created_at", "d.updated_at",
		"COALESCE(s.id, 0)", "COALESCE(s.nombre, '')", "a.nombre",
	).From("dependencias AS d").
		LeftJoin("sedes s ON d.sede_id = s.id").
		LeftJoin("areas a ON d.area_id = a.id")
}

func (r *DependenciaRepository) GetDependencias(ctx context.Context, filter types.Filter) ([]entities.Dependencia, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"d.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(d.id)").From("dependencias AS d"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, dependenciaMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Dependencia{}, 0, nil
	}

	baseBuilder := applySearch(r.baseSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("d.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, dependenciaMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	dependencias := make([]entities.Dependencia, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDependencia(rows)
		if err != nil {
			return nil, 0, err
		}
		dependencias = append(dependencias, *d)
	}
	return dependencias, total, rows.Err()
}

func (r *DependenciaRepository) FindDependencia(ctx context.Context, id uint64) (*entities.Dependencia, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDependencia(r.storage.QueryRow(ctx, query, args...))
}

func (r *DependenciaRepository) CreateDependencia(ctx context.Context, d entities.Dependencia) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO dependencias (nombre, sede_id, area_id) VALUES ($1, $2, $3) RETURNING id`,
		d.Nombre, d.SedeID, d.AreaID,
	).Scan(&newID)
	return newID, err
}

func (r *DependenciaRepository) UpdateDependencia(ctx context.Context, id uint64, d entities.Dependencia) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE dependencias SET nombre = $1, sede_id = $2, area_id = $3, updated_at = NOW() WHERE id = $4`,
		d.Nombre, d.SedeID, d.AreaID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DependenciaRepository) DeleteDependencia(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM dependencias WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
