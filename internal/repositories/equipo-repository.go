package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gestion-system/internal/entities"
	infradb "gestion-system/internal/infrastructure/db"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/types"
)

var equipoMap = map[string]string{
	"id":             "e.id",
	"nombre":         "e.nombre",
	"marca":          "e.marca",
	"serial":         "e.serial",
	"sede_id":        "e.sede_id",
	"dependencia_id": "e.dependencia_id",
	"estado":         "e.estado",
}

var entregaMap = map[string]string{
	"id":          "en.id",
	"equipo_id":   "en.equipo_id",
	"personal_id": "en.personal_id",
}

var devueltoMap = map[string]string{
	"id":          "dv.id",
	"equipo_id":   "dv.equipo_id",
	"personal_id": "dv.personal_id",
}

// -----------------------------------------------------------
// PC EQUIPOS
// -----------------------------------------------------------

type EquipoRepositoryInterface interface {
	GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error)
	FindEquipo(ctx context.Context, id uint64) (*entities.Equipo, error)
	CreateEquipo(ctx context.Context, e entities.Equipo) (uint64, error)
	UpdateEquipo(ctx context.Context, id uint64, e entities.Equipo) error
	DeleteEquipo(ctx context.Context, id uint64) error

	GetCaracteristicas(ctx context.Context, equipoID uint64) ([]entities.CaracteristicaTecnica, error)
	CreateCaracteristica(ctx context.Context, c entities.CaracteristicaTecnica) (uint64, error)
	UpdateCaracteristica(ctx context.Context, id uint64, c entities.CaracteristicaTecnica) error
	DeleteCaracteristica(ctx context.Context, id uint64) error
}

type EquipoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipoRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipoRepositoryInterface {
	return &EquipoRepository{storage: storage, logger: logger}
}

func scanEquipo(row pgx.Row) (*entities.Equipo, error) {
	var e entities.Equipo
	var marca, modelo, serial, observacion sql.NullString
	var sedeID, dependenciaID sql.NullInt64
	var fechaAdq sql.NullTime

	err := row.Scan(&e.ID, &e.Nombre, &marca, &modelo, &serial,
		&sedeID, &dependenciaID, &e.Estado, &fechaAdq, &observacion,
		&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando equipo: %w", err)
	}

	asignar := func(dst **string, src sql.NullString) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	asignar(&e.Marca, marca)
	asignar(&e.Modelo, modelo)
	asignar(&e.Serial, serial)
	asignar(&e.Observacion, observacion)

	if sedeID.Valid {
		id := uint64(sedeID.Int64)
		e.SedeID = &id
	}
	if dependenciaID.Valid {
		id := uint64(dependenciaID.Int64)
		e.DependenciaID = &id
	}
	if fechaAdq.Valid {
		t := fechaAdq.Time
		e.FechaAdquisicion = &t
	}
	return &e, nil
}

func (r *EquipoRepository) GetEquipos(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"e.nombre": pat},
				sq.ILike{"e.marca": pat},
				sq.ILike{"e.serial": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(e.id)").From("pc_equipos AS e"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, equipoMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipo{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"e.id", "e.nombre", "e.marca", "e.modelo", "e.serial",
		"e.sede_id", "e.dependencia_id", "e.estado", "e.fecha_adquisicion", "e.observacion",
		"e.created_at", "e.updated_at",
	).From("pc_equipos AS e"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.nombre ASC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, equipoMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipos := make([]entities.Equipo, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEquipo(rows)
		if err != nil {
			return nil, 0, err
		}
		equipos = append(equipos, *e)
	}
	return equipos, total, rows.Err()
}

func (r *EquipoRepository) FindEquipo(ctx context.Context, id uint64) (*entities.Equipo, error) {
	return scanEquipo(r.storage.QueryRow(ctx, `
		SELECT id, nombre, marca, modelo, serial, sede_id, dependencia_id, estado,
		       fecha_adquisicion, observacion, created_at, updated_at
		FROM pc_equipos WHERE id = $1`, id))
}

func (r *EquipoRepository) CreateEquipo(ctx context.Context, e entities.Equipo) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO pc_equipos (nombre, marca, modelo, serial, sede_id, dependencia_id, estado, fecha_adquisicion, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		e.Nombre, e.Marca, e.Modelo, e.Serial, e.SedeID, e.DependenciaID, e.Estado, e.FechaAdquisicion, e.Observacion,
	).Scan(&newID)
	return newID, err
}

func (r *EquipoRepository) UpdateEquipo(ctx context.Context, id uint64, e entities.Equipo) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE pc_equipos
		SET nombre = $1, marca = $2, modelo = $3, serial = $4, sede_id = $5,
		    dependencia_id = $6, estado = $7, fecha_adquisicion = $8, observacion = $9, updated_at = NOW()
		WHERE id = $10`,
		e.Nombre, e.Marca, e.Modelo, e.Serial, e.SedeID, e.DependenciaID, e.Estado, e.FechaAdquisicion, e.Observacion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipoRepository) DeleteEquipo(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM pc_equipos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// CARACTERISTICAS TECNICAS
// -----------------------------------------------------------

func scanCaracteristica(row pgx.Row) (*entities.CaracteristicaTecnica, error) {
	var c entities.CaracteristicaTecnica
	var procesador, ram, disco, so, observacion sql.NullString

	err := row.Scan(&c.ID, &c.EquipoID, &procesador, &ram, &disco, &so, &observacion,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando característica técnica: %w", err)
	}

	asignar := func(dst **string, src sql.NullString) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	asignar(&c.Procesador, procesador)
	asignar(&c.MemoriaRAM, ram)
	asignar(&c.Disco, disco)
	asignar(&c.SistemaOperativo, so)
	asignar(&c.Observacion, observacion)

	return &c, nil
}

func (r *EquipoRepository) GetCaracteristicas(ctx context.Context, equipoID uint64) ([]entities.CaracteristicaTecnica, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, equipo_id, procesador, memoria_ram, disco, sistema_operativo, observacion, created_at, updated_at
		FROM pc_caracteristicas_tecnicas WHERE equipo_id = $1 ORDER BY id`, equipoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	caracteristicas := make([]entities.CaracteristicaTecnica, 0)
	for rows.Next() {
		c, err := scanCaracteristica(rows)
		if err != nil {
			return nil, err
		}
		caracteristicas = append(caracteristicas, *c)
	}
	return caracteristicas, rows.Err()
}

func (r *EquipoRepository) CreateCaracteristica(ctx context.Context, c entities.CaracteristicaTecnica) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO pc_caracteristicas_tecnicas (equipo_id, procesador, memoria_ram, disco, sistema_operativo, observacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.EquipoID, c.Procesador, c.MemoriaRAM, c.Disco, c.SistemaOperativo, c.Observacion,
	).Scan(&newID)
	return newID, err
}

func (r *EquipoRepository) UpdateCaracteristica(ctx context.Context, id uint64, c entities.CaracteristicaTecnica) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE pc_caracteristicas_tecnicas
		SET procesador = $1, memoria_ram = $2, disco = $3, sistema_operativo = $4, observacion = $5, updated_at = NOW()
		WHERE id = $6`,
		c.Procesador, c.MemoriaRAM, c.Disco, c.SistemaOperativo, c.Observacion, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipoRepository) DeleteCaracteristica(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM pc_caracteristicas_tecnicas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// PC ENTREGAS
// -----------------------------------------------------------

type EntregaRepositoryInterface interface {
	GetEntregas(ctx context.Context, filter types.Filter) ([]entities.Entrega, uint64, error)
	FindEntrega(ctx context.Context, id uint64) (*entities.Entrega, error)
	CreateEntrega(ctx context.Context, e entities.Entrega) (uint64, error)
	UpdateEntrega(ctx context.Context, id uint64, e entities.Entrega) error
	DeleteEntrega(ctx context.Context, id uint64) error
}

type EntregaRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEntregaRepository(storage *pgxpool.Pool, logger *zap.Logger) EntregaRepositoryInterface {
	return &EntregaRepository{storage: storage, logger: logger}
}

func scanEntrega(row pgx.Row) (*entities.Entrega, error) {
	var e entities.Entrega
	var observacion, firma sql.NullString
	var equipoNombre, personalNombres, personalApellidos sql.NullString

	err := row.Scan(&e.ID, &e.EquipoID, &e.PersonalID, &e.FechaEntrega,
		&observacion, &firma, &e.CreatedAt, &e.UpdatedAt,
		&equipoNombre, &personalNombres, &personalApellidos)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando entrega: %w", err)
	}

	if observacion.Valid {
		e.Observacion = &observacion.String
	}
	if firma.Valid {
		e.FirmaEntrega = &firma.String
	}
	if equipoNombre.Valid {
		e.Equipo = &entities.Equipo{ID: e.EquipoID, Nombre: equipoNombre.String}
	}
	if personalNombres.Valid {
		e.Personal = &entities.Personal{
			ID:        e.PersonalID,
			Nombres:   personalNombres.String,
			Apellidos: personalApellidos.String,
		}
	}
	return &e, nil
}

func (r *EntregaRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(
		"en.id", "en.equipo_id", "en.personal_id", "en.fecha_entrega",
		"en.observacion", "en.firma_entrega", "en.created_at", "en.updated_at",
		"eq.nombre", "pe.nombres", "pe.apellidos",
	).From("pc_entregas AS en").
		LeftJoin("pc_equipos eq ON en.equipo_id = eq.id").
		LeftJoin("personal pe ON en.personal_id = pe.id")
}

func (r *EntregaRepository) GetEntregas(ctx context.Context, filter types.Filter) ([]entities.Entrega, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"eq.nombre": pat},
				sq.ILike{"pe.nombres": pat},
				sq.ILike{"pe.apellidos": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(en.id)").
		From("pc_entregas AS en").
		LeftJoin("pc_equipos eq ON en.equipo_id = eq.id").
		LeftJoin("personal pe ON en.personal_id = pe.id"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, entregaMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Entrega{}, 0, nil
	}

	baseBuilder := applySearch(r.baseSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("en.fecha_entrega DESC", "en.id DESC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, entregaMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entregas := make([]entities.Entrega, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEntrega(rows)
		if err != nil {
			return nil, 0, err
		}
		entregas = append(entregas, *e)
	}
	return entregas, total, rows.Err()
}

func (r *EntregaRepository) FindEntrega(ctx context.Context, id uint64) (*entities.Entrega, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"en.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEntrega(r.storage.QueryRow(ctx, query, args...))
}

func (r *EntregaRepository) CreateEntrega(ctx context.Context, e entities.Entrega) (uint64, error) {
	fecha := e.FechaEntrega
	if fecha.IsZero() {
		fecha = time.Now()
	}
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO pc_entregas (equipo_id, personal_id, fecha_entrega, observacion, firma_entrega)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.EquipoID, e.PersonalID, fecha, e.Observacion, e.FirmaEntrega,
	).Scan(&newID)
	return newID, err
}

func (r *EntregaRepository) UpdateEntrega(ctx context.Context, id uint64, e entities.Entrega) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE pc_entregas
		SET equipo_id = $1, personal_id = $2, fecha_entrega = $3, observacion = $4,
		    firma_entrega = COALESCE($5, firma_entrega), updated_at = NOW()
		WHERE id = $6`,
		e.EquipoID, e.PersonalID, e.FechaEntrega, e.Observacion, e.FirmaEntrega, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EntregaRepository) DeleteEntrega(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM pc_entregas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// PC DEVUELTOS
// -----------------------------------------------------------

type DevueltoRepositoryInterface interface {
	GetDevueltos(ctx context.Context, filter types.Filter) ([]entities.Devuelto, uint64, error)
	FindDevuelto(ctx context.Context, id uint64) (*entities.Devuelto, error)
	CreateDevuelto(ctx context.Context, d entities.Devuelto) (uint64, error)
	UpdateDevuelto(ctx context.Context, id uint64, d entities.Devuelto) error
	DeleteDevuelto(ctx context.Context, id uint64) error
}

type DevueltoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDevueltoRepository(storage *pgxpool.Pool, logger *zap.Logger) DevueltoRepositoryInterface {
	return &DevueltoRepository{storage: storage, logger: logger}
}

func scanDevuelto(row pgx.Row) (*entities.Devuelto, error) {
	var d entities.Devuelto
	var motivo, estadoEquipo sql.NullString
	var equipoNombre, personalNombres, personalApellidos sql.NullString

	err := row.Scan(&d.ID, &d.EquipoID, &d.PersonalID, &d.FechaDevolucion,
		&motivo, &estadoEquipo, &d.CreatedAt, &d.UpdatedAt,
		&equipoNombre, &personalNombres, &personalApellidos)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error escaneando devolución: %w", err)
	}

	if motivo.Valid {
		d.Motivo = &motivo.String
	}
	if estadoEquipo.Valid {
		d.EstadoEquipo = &estadoEquipo.String
	}
	if equipoNombre.Valid {
		d.Equipo = &entities.Equipo{ID: d.EquipoID, Nombre: equipoNombre.String}
	}
	if personalNombres.Valid {
		d.Personal = &entities.Personal{
			ID:        d.PersonalID,
			Nombres:   personalNombres.String,
			Apellidos: personalApellidos.String,
		}
	}
	return &d, nil
}

func (r *DevueltoRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(
		"dv.id", "dv.equipo_id", "dv.personal_id", "dv.fecha_devolucion",
		"dv.motivo", "dv.estado_equipo", "dv.created_at", "dv.updated_at",
		"eq.nombre", "pe.nombres", "pe.apellidos",
	).From("pc_devueltos AS dv").
		LeftJoin("pc_equipos eq ON dv.equipo_id = eq.id").
		LeftJoin("personal pe ON dv.personal_id = pe.id")
}

func (r *DevueltoRepository) GetDevueltos(ctx context.Context, filter types.Filter) ([]entities.Devuelto, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"eq.nombre": pat},
				sq.ILike{"pe.nombres": pat},
				sq.ILike{"pe.apellidos": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(dv.id)").
		From("pc_devueltos AS dv").
		LeftJoin("pc_equipos eq ON dv.equipo_id = eq.id").
		LeftJoin("personal pe ON dv.personal_id = pe.id"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = infradb.ApplyListParams(countBuilder, countFilter, devueltoMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Devuelto{}, 0, nil
	}

	baseBuilder := applySearch(r.baseSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("dv.fecha_devolucion DESC", "dv.id DESC")
	}
	baseBuilder = infradb.ApplyListParams(baseBuilder, filter, devueltoMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	devueltos := make([]entities.Devuelto, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDevuelto(rows)
		if err != nil {
			return nil, 0, err
		}
		devueltos = append(devueltos, *d)
	}
	return devueltos, total, rows.Err()
}

func (r *DevueltoRepository) FindDevuelto(ctx context.Context, id uint64) (*entities.Devuelto, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"dv.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDevuelto(r.storage.QueryRow(ctx, query, args...))
}

func (r *DevueltoRepository) CreateDevuelto(ctx context.Context, d entities.Devuelto) (uint64, error) {
	fecha := d.FechaDevolucion
	if fecha.IsZero() {
		fecha = time.Now()
	}
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO pc_devueltos (equipo_id, personal_id, fecha_devolucion, motivo, estado_equipo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		d.EquipoID, d.PersonalID, fecha, d.Motivo, d.EstadoEquipo,
	).Scan(&newID)
	return newID, err
}

func (r *DevueltoRepository) UpdateDevuelto(ctx context.Context, id uint64, d entities.Devuelto) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE pc_devueltos
		SET equipo_id = $1, personal_id = $2, fecha_devolucion = $3, motivo = $4, estado_equipo = $5, updated_at = NOW()
		WHERE id = $6`,
		d.EquipoID, d.PersonalID, d.FechaDevolucion, d.Motivo, d.EstadoEquipo, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DevueltoRepository) DeleteDevuelto(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM pc_devueltos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
