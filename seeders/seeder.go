package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"gestion-system/pkg/utils"
)

// SeedCatalogoBase crea el catálogo de permisos y los roles del flujo de
// aprobación. Es idempotente: las filas existentes se conservan.
func SeedCatalogoBase(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Sembrando permisos y roles...")

	if err := seedPermisos(ctx, db); err != nil {
		log.Fatalf("error sembrando permisos: %v", err)
	}
	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("error sembrando roles: %v", err)
	}
	if err := seedRolPermisos(ctx, db); err != nil {
		log.Fatalf("error asignando permisos a roles: %v", err)
	}
	log.Println("Permisos y roles listos.")
}

func seedPermisos(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `INSERT INTO permisos (nombre, descripcion) VALUES ($1, $2)
	               ON CONFLICT (nombre) DO NOTHING`
	for _, p := range permisosData {
		if _, err := tx.Exec(ctx, query, p.Nombre, p.Descripcion); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `INSERT INTO roles (nombre) VALUES ($1)
	               ON CONFLICT (nombre) DO NOTHING`
	for _, nombre := range rolesData {
		if _, err := tx.Exec(ctx, query, nombre); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRolPermisos(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const porNombre = `INSERT INTO rol_permisos (rol_id, permiso_id)
	                   SELECT r.id, p.id FROM roles r, permisos p
	                   WHERE r.nombre = $1 AND p.nombre = $2
	                   ON CONFLICT DO NOTHING`
	for rol, permisos := range rolPermisosData {
		for _, permiso := range permisos {
			if _, err := tx.Exec(ctx, porNombre, rol, permiso); err != nil {
				return err
			}
		}
	}

	// El Administrador recibe el catálogo completo.
	const todos = `INSERT INTO rol_permisos (rol_id, permiso_id)
	               SELECT r.id, p.id FROM roles r, permisos p
	               WHERE r.nombre = 'Administrador'
	               ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(ctx, todos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SeedAdmin crea el usuario administrador inicial si no existe.
func SeedAdmin(db *pgxpool.Pool, usuario, password string) {
	ctx := context.Background()
	log.Println("Creando usuario administrador...")

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("error generando el hash de la contraseña: %v", err)
	}

	const query = `INSERT INTO usuarios (nombre_completo, usuario, password, rol_id)
	               SELECT 'Administrador del Sistema', $1, $2, r.id
	               FROM roles r WHERE r.nombre = 'Administrador'
	               ON CONFLICT (usuario) DO NOTHING`
	tag, err := db.Exec(ctx, query, usuario, hashed)
	if err != nil {
		log.Fatalf("error creando el administrador: %v", err)
	}
	if tag.RowsAffected() == 0 {
		log.Println("El administrador ya existía, no se modificó.")
		return
	}
	log.Printf("Administrador %q creado.", usuario)
}
