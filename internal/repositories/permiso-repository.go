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

var permisoMap = map[string]string{
	"id":     "p.id",
	"nombre": "p.nombre",
}

type PermisoRepositoryInterface interface {
	GetPermisos(ctx context.Context, filter types.Filter) ([]entities.Permiso, uint64, error)
	FindPermiso(ctx context.Context, id uint64) (*entities.Permiso, error)
	CreatePermiso(ctx context.Context, p entities.Permiso) (uint64, error)
	UpdatePermiso(ctx context.Context, id uint64, p entities.Permiso) error
	DeletePermiso(ctx context.Context, id uint64) error
	GetRolesConPermisos(ctx context.Context) ([]entities.RolConPermisos, error)
	ReplaceRolPermisos(ctx context.Context, tx pgx.Tx, rolID uint64, permisoIDs []uint64) error
	GetPermisoNamesByRol(ctx context.Context, rolID uint64) ([]string, error)
}

type PermisoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermisoRepository(storage *pgxpool.Pool, logger *zap.Logger) PermisoRepositoryInterface {
	return &PermisoRepository{storage: storage, logger: logger}
}

func scanPermiso(row pgx.Row) (*entities.Permiso, error) {
	var p entities.Permiso
	var descripcion sql.NullString

	err := row.Scan(&p.ID, &p.Nombre, &descripcion, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando permiso: %w", err)
	}
	if descripcion.Valid {
		p.Descripcion = &descripcion.String
	}
	return &p, nil
}

func (r *PermisoRepository) GetPermisos(ctx context.Context, filter types.Filter) ([]entities.Permiso, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"p.nombre": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(p.id)").From("permisos AS p"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, permisoMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Permiso{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"p.id", "p.nombre", "p.descripcion", "p.created_at", "p.updated_at",
	).From("permisos AS p"))

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("p.id ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, permisoMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	permisos := make([]entities.Permiso, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPermiso(rows)
		if err != nil {
			return nil, 0, err
		}
		permisos = append(permisos, *p)
	}

	return permisos, total, nil
}

func (r *PermisoRepository) FindPermiso(ctx context.Context, id uint64) (*entities.Permiso, error) {
	return scanPermiso(r.storage.QueryRow(ctx,
		`SELECT id, nombre, descripcion, created_at, updated_at FROM permisos WHERE id = $1`, id))
}

func (r *PermisoRepository) CreatePermiso(ctx context.Context, p entities.Permiso) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO permisos (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		p.Nombre, p.Descripcion,
	).Scan(&newID)
	return newID, err
}

func (r *PermisoRepository) UpdatePermiso(ctx context.Context, id uint64, p entities.Permiso) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE permisos SET nombre = $1, descripcion = $2, updated_at = NOW() WHERE id = $3`,
		p.Nombre, p.Descripcion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PermisoRepository) DeletePermiso(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM permisos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetRolesConPermisos arma el listado de asignaciones rol → permisos en dos
// consultas en lugar de N+1.
func (r *PermisoRepository) GetRolesConPermisos(ctx context.Context) ([]entities.RolConPermisos, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, nombre, descripcion, created_at, updated_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	asignaciones := make([]entities.RolConPermisos, 0)
	porRol := make(map[uint64]int)
	for rows.Next() {
		var rol entities.Rol
		var descripcion sql.NullString
		if err := rows.Scan(&rol.ID, &rol.Nombre, &descripcion, &rol.CreatedAt, &rol.UpdatedAt); err != nil {
			return nil, err
		}
		if descripcion.Valid {
			rol.Descripcion = &descripcion.String
		}
		porRol[rol.ID] = len(asignaciones)
		asignaciones = append(asignaciones, entities.RolConPermisos{Rol: rol, Permisos: []entities.Permiso{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	permRows, err := r.storage.Query(ctx, `
		SELECT rp.rol_id, p.id, p.nombre, p.descripcion, p.created_at, p.updated_at
		FROM rol_permisos rp
		JOIN permisos p ON p.id = rp.permiso_id
		ORDER BY rp.rol_id, p.id`)
	if err != nil {
		return nil, err
	}
	defer permRows.Close()

	for permRows.Next() {
		var rolID uint64
		var p entities.Permiso
		var descripcion sql.NullString
		if err := permRows.Scan(&rolID, &p.ID, &p.Nombre, &descripcion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if descripcion.Valid {
			p.Descripcion = &descripcion.String
		}
		if idx, ok := porRol[rolID]; ok {
			asignaciones[idx].Permisos = append(asignaciones[idx].Permisos, p)
		}
	}

	return asignaciones, permRows.Err()
}

func (r *PermisoRepository) ReplaceRolPermisos(ctx context.Context, tx pgx.Tx, rolID uint64, permisoIDs []uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM rol_permisos WHERE rol_id = $1`, rolID); err != nil {
		return err
	}
	for _, permisoID := range permisoIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO rol_permisos (rol_id, permiso_id) VALUES ($1, $2)`,
			rolID, permisoID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PermisoRepository) GetPermisoNamesByRol(ctx context.Context, rolID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT p.nombre
		FROM rol_permisos rp
		JOIN permisos p ON p.id = rp.permiso_id
		WHERE rp.rol_id = $1`, rolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nombres := make([]string, 0)
	for rows.Next() {
		var nombre string
		if err := rows.Scan(&nombre); err != nil {
			return nil, err
		}
		nombres = append(nombres, nombre)
	}
	return nombres, rows.Err()
}
