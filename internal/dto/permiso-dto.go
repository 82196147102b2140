package dto

type CreatePermisoDTO struct {
	Nombre      string  `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type UpdatePermisoDTO = CreatePermisoDTO

// AssignPermisosDTO reemplaza el conjunto completo de permisos de un rol.
type AssignPermisosDTO struct {
	RolID    uint64   `json:"rol_id" validate:"required"`
	Permisos []uint64 `json:"permisos" validate:"required"`
}
