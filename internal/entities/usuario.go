package entities

import "time"

type Rol struct {
	ID          uint64    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Permiso struct {
	ID          uint64    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RolConPermisos es la fila del listado de asignaciones rol → permisos.
type RolConPermisos struct {
	Rol      Rol       `json:"rol"`
	Permisos []Permiso `json:"permisos"`
}

type Usuario struct {
	ID             uint64    `json:"id"`
	NombreCompleto string    `json:"nombre_completo"`
	Usuario        string    `json:"usuario"`
	Email          *string   `json:"email,omitempty"`
	Password       string    `json:"-"`
	RolID          uint64    `json:"rol_id"`
	FirmaDigital   *string   `json:"firma_digital,omitempty"`
	FotoPerfil     *string   `json:"foto_perfil,omitempty"`
	Activo         bool      `json:"activo"`
	Rol            *Rol      `json:"rol,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TieneFirmaGuardada indica si el usuario puede reutilizar su firma digital
// almacenada en lugar de dibujar una nueva.
func (u *Usuario) TieneFirmaGuardada() bool {
	return u.FirmaDigital != nil && *u.FirmaDigital != ""
}
