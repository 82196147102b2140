package entities

import "time"

type Producto struct {
	ID        uint64    `json:"id"`
	Nombre    string    `json:"nombre"`
	Codigo    *string   `json:"codigo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductoServicio struct {
	ID          uint64    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Tipo        string    `json:"tipo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TipoSolicitud struct {
	ID          uint64    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Sede struct {
	ID        uint64    `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion *string   `json:"direccion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Area struct {
	ID        uint64    `json:"id"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dependencia pertenece a una sede; el frontend la usa como segundo nivel del
// selector en cascada sede → dependencia.
type Dependencia struct {
	ID        uint64    `json:"id"`
	Nombre    string    `json:"nombre"`
	SedeID    uint64    `json:"sede_id"`
	AreaID    *uint64   `json:"area_id,omitempty"`
	Sede      *Sede     `json:"sede,omitempty"`
	Area      *Area     `json:"area,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
