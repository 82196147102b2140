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

var personalMap = map[string]string{
	"id":             "p.id",
	"nombres":        "p.nombres",
	"apellidos":      "p.apellidos",
	"documento":      "p.documento",
	"dependencia_id": "p.dependencia_id",
	"activo":         "p.activo",
}

type PersonalRepositoryInterface interface {
	GetPersonal(ctx context.Context, filter types.Filter) ([]entities.Personal, uint64, error)
	FindPersonal(ctx context.Context, id uint64) (*entities.Personal, error)
	CreatePersonal(ctx context.Context, p entities.Personal) (uint64, error)
	UpdatePersonal(ctx context.Context, id uint64, p entities.Personal) error
	DeletePersonal(ctx context.Context, id uint64) error
}

type PersonalRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPersonalRepository(storage *pgxpool.Pool, logger *zap.Logger) PersonalRepositoryInterface {
	return &PersonalRepository{storage: storage, logger: logger}
}

func scanPersonal(row pgx.Row) (*entities.Personal, error) {
	var p entities.Personal
	var cargo, email, telefono sql.NullString
	var dependenciaID sql.NullInt64
	var dependenciaNombre sql.NullString

	err := row.Scan(
		&p.ID, &p.Nombres, &p.Apellidos, &p.Documento, &cargo,
		&dependenciaID, &email, &telefono, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
		&dependenciaNombre,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando personal: %w", err)
	}

	if cargo.Valid {
		p.Cargo = &cargo.String
	}
	if email.Valid {
		p.Email = &email.String
	}
	if telefono.Valid {
		p.Telefono = &telefono.String
	}
	if dependenciaID.Valid {
		id := uint64(dependenciaID.Int64)
		p.DependenciaID = &id
		if dependenciaNombre.Valid {
			p.Dependencia = &entities.Dependencia{ID: id, Nombre: dependenciaNombre.String}
		}
	}
	return &p, nil
}

func (r *PersonalRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.nombres", "p.apellidos", "p.documento", "p.cargo",
		"p.dependencia_id", "p.email", "p.telefono", "p.activo", "p.created_at", "p.updated_at",
		"d.nombre",
	).From("personal AS p").
		LeftJoin("dependencias d ON p.dependencia_id = d.id")
}

func (r *PersonalRepository) GetPersonal(ctx context.Context, filter types.Filter) ([]entities.Personal, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"p.nombres": pat},
				sq.ILike{"p.apellidos": pat},
				sq.ILike{"p.documento": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(p.id)").From("personal AS p"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, personalMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Personal{}, 0, nil
	}

	baseBuilder := applySearch(r.baseSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("p.apellidos ASC", "p.nombres ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, personalMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	personal := make([]entities.Personal, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPersonal(rows)
		if err != nil {
			return nil, 0, err
		}
		personal = append(personal, *p)
	}
	return personal, total, rows.Err()
}

func (r *PersonalRepository) FindPersonal(ctx context.Context, id uint64) (*entities.Personal, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPersonal(r.storage.QueryRow(ctx, query, args...))
}

func (r *PersonalRepository) CreatePersonal(ctx context.Context, p entities.Personal) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO personal (nombres, apellidos, documento, cargo, dependencia_id, email, telefono, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		p.Nombres, p.Apellidos, p.Documento, p.Cargo, p.DependenciaID, p.Email, p.Telefono, p.Activo,
	).Scan(&newID)
	return newID, err
}

func (r *PersonalRepository) UpdatePersonal(ctx context.Context, id uint64, p entities.Personal) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE personal
		SET nombres = $1, apellidos = $2, documento = $3, cargo = $4,
		    dependencia_id = $5, email = $6, telefono = $7, activo = $8, updated_at = NOW()
		WHERE id = $9`,
		p.Nombres, p.Apellidos, p.Documento, p.Cargo, p.DependenciaID, p.Email, p.Telefono, p.Activo, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PersonalRepository) DeletePersonal(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM personal WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
