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
	apperrors "gestion-system/pkg/errors"
)

type UsuarioRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Usuario, error)
	FindByLogin(ctx context.Context, login string) (*entities.Usuario, error)
	UpdatePerfil(ctx context.Context, id uint64, nombreCompleto string, email *string) error
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
	UpdateFirma(ctx context.Context, id uint64, firmaPath *string) error
	UpdateFoto(ctx context.Context, id uint64, fotoPath *string) error
}

type UsuarioRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUsuarioRepository(storage *pgxpool.Pool, logger *zap.Logger) UsuarioRepositoryInterface {
	return &UsuarioRepository{storage: storage, logger: logger}
}

func scanUsuario(row pgx.Row) (*entities.Usuario, error) {
	var u entities.Usuario
	var r entities.Rol
	var email, firma, foto, rolDescripcion sql.NullString

	err := row.Scan(
		&u.ID, &u.NombreCompleto, &u.Usuario, &email, &u.Password,
		&u.RolID, &firma, &foto, &u.Activo, &u.CreatedAt, &u.UpdatedAt,
		&r.ID, &r.Nombre, &rolDescripcion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando usuario: %w", err)
	}

	if email.Valid {
		u.Email = &email.String
	}
	if firma.Valid {
		u.FirmaDigital = &firma.String
	}
	if foto.Valid {
		u.FotoPerfil = &foto.String
	}
	if rolDescripcion.Valid {
		r.Descripcion = &rolDescripcion.String
	}
	if r.ID > 0 {
		u.Rol = &r
	}

	return &u, nil
}

func (r *UsuarioRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.Usuario, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"u.id", "u.nombre_completo", "u.usuario", "u.email", "u.password",
		"u.rol_id", "u.firma_digital", "u.foto_perfil", "u.activo", "u.created_at", "u.updated_at",
		"COALESCE(r.id, 0)", "COALESCE(r.nombre, '')", "r.descripcion",
	).From("usuarios u").
		LeftJoin("roles r ON u.rol_id = r.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUsuario(r.storage.QueryRow(ctx, query, args...))
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uint64) (*entities.Usuario, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id})
}

func (r *UsuarioRepository) FindByLogin(ctx context.Context, login string) (*entities.Usuario, error) {
	return r.findOne(ctx, sq.Or{sq.Eq{"u.usuario": login}, sq.Eq{"u.email": login}})
}

func (r *UsuarioRepository) UpdatePerfil(ctx context.Context, id uint64, nombreCompleto string, email *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE usuarios SET nombre_completo = $1, email = $2, updated_at = NOW() WHERE id = $3`,
		nombreCompleto, email, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE usuarios SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashedPassword, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) UpdateFirma(ctx context.Context, id uint64, firmaPath *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE usuarios SET firma_digital = $1, updated_at = NOW() WHERE id = $2`,
		firmaPath, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) UpdateFoto(ctx context.Context, id uint64, fotoPath *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE usuarios SET foto_perfil = $1, updated_at = NOW() WHERE id = $2`,
		fotoPath, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
