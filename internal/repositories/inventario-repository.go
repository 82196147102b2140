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

var inventarioMap = map[string]string{
	"id":        "i.id",
	"nombre":    "i.nombre",
	"codigo":    "i.codigo",
	"categoria": "i.categoria",
	"cantidad":  "i.cantidad",
	"ubicacion": "i.ubicacion",
}

type InventarioRepositoryInterface interface {
	GetInventario(ctx context.Context, filter types.Filter) ([]entities.Inventario, uint64, error)
	FindInventario(ctx context.Context, id uint64) (*entities.Inventario, error)
	CreateInventario(ctx context.Context, item entities.Inventario) (uint64, error)
	UpdateInventario(ctx context.Context, id uint64, item entities.Inventario) error
	DeleteInventario(ctx context.Context, id uint64) error
}

type InventarioRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInventarioRepository(storage *pgxpool.Pool, logger *zap.Logger) InventarioRepositoryInterface {
	return &InventarioRepository{storage: storage, logger: logger}
}

func scanInventario(row pgx.Row) (*entities.Inventario, error) {
	var item entities.Inventario
	var codigo, categoria, unidad, ubicacion, observacion sql.NullString

	err := row.Scan(&item.ID, &item.Nombre, &codigo, &categoria, &item.Cantidad,
		&unidad, &ubicacion, &observacion, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando inventario: %w", err)
	}

	asignar := func(dst **string, src sql.NullString) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	asignar(&item.Codigo, codigo)
	asignar(&item.Categoria, categoria)
	asignar(&item.Unidad, unidad)
	asignar(&item.Ubicacion, ubicacion)
	asignar(&item.Observacion, observacion)

	return &item, nil
}

func (r *InventarioRepository) GetInventario(ctx context.Context, filter types.Filter) ([]entities.Inventario, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"i.nombre": pat},
				sq.ILike{"i.codigo": pat},
				sq.ILike{"i.categoria": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(i.id)").From("inventario AS i"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, inventarioMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Inventario{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"i.id", "i.nombre", "i.codigo", "i.categoria", "i.cantidad",
		"i.unidad", "i.ubicacion", "i.observacion", "i.created_at", "i.updated_at",
	).From("inventario AS i"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("i.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, inventarioMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entities.Inventario, 0, filter.Limit)
	for rows.Next() {
		item, err := scanInventario(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (r *InventarioRepository) FindInventario(ctx context.Context, id uint64) (*entities.Inventario, error) {
	return scanInventario(r.storage.QueryRow(ctx, `
		SELECT id, nombre, codigo, categoria, cantidad, unidad, ubicacion, observacion, created_at, updated_at
		FROM inventario WHERE id = $1`, id))
}

func (r *InventarioRepository) CreateInventario(ctx context.Context, item entities.Inventario) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO inventario (nombre, codigo, categoria, cantidad, unidad, ubicacion, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.Nombre, item.Codigo, item.Categoria, item.Cantidad, item.Unidad, item.Ubicacion, item.Observacion,
	).Scan(&newID)
	return newID, err
}

func (r *InventarioRepository) UpdateInventario(ctx context.Context, id uint64, item entities.Inventario) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE inventario
		SET nombre = $1, codigo = $2, categoria = $3, cantidad = $4,
		    unidad = $5, ubicacion = $6, observacion = $7, updated_at = NOW()
		WHERE id = $8`,
		item.Nombre, item.Codigo, item.Categoria, item.Cantidad, item.Unidad, item.Ubicacion, item.Observacion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventarioRepository) DeleteInventario(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM inventario WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
