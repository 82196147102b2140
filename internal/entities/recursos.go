package entities

import "time"

type Personal struct {
	ID            uint64       `json:"id"`
	Nombres       string       `json:"nombres"`
	Apellidos     string       `json:"apellidos"`
	Documento     string       `json:"documento"`
	Cargo         *string      `json:"cargo,omitempty"`
	DependenciaID *uint64      `json:"dependencia_id,omitempty"`
	Email         *string      `json:"email,omitempty"`
	Telefono      *string      `json:"telefono,omitempty"`
	Activo        bool         `json:"activo"`
	Dependencia   *Dependencia `json:"dependencia,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Inventario struct {
	ID          uint64    `json:"id"`
	Nombre      string    `json:"nombre"`
	Codigo      *string   `json:"codigo,omitempty"`
	Categoria   *string   `json:"categoria,omitempty"`
	Cantidad    int       `json:"cantidad"`
	Unidad      *string   `json:"unidad,omitempty"`
	Ubicacion   *string   `json:"ubicacion,omitempty"`
	Observacion *string   `json:"observacion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Equipo struct {
	ID               uint64     `json:"id"`
	Nombre           string     `json:"nombre"`
	Marca            *string    `json:"marca,omitempty"`
	Modelo           *string    `json:"modelo,omitempty"`
	Serial           *string    `json:"serial,omitempty"`
	SedeID           *uint64    `json:"sede_id,omitempty"`
	DependenciaID    *uint64    `json:"dependencia_id,omitempty"`
	Estado           string     `json:"estado"`
	FechaAdquisicion *time.Time `json:"fecha_adquisicion,omitempty"`
	Observacion      *string    `json:"observacion,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type CaracteristicaTecnica struct {
	ID               uint64    `json:"id"`
	EquipoID         uint64    `json:"equipo_id"`
	Procesador       *string   `json:"procesador,omitempty"`
	MemoriaRAM       *string   `json:"memoria_ram,omitempty"`
	Disco            *string   `json:"disco,omitempty"`
	SistemaOperativo *string   `json:"sistema_operativo,omitempty"`
	Observacion      *string   `json:"observacion,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Entrega struct {
	ID           uint64    `json:"id"`
	EquipoID     uint64    `json:"equipo_id"`
	PersonalID   uint64    `json:"personal_id"`
	FechaEntrega time.Time `json:"fecha_entrega"`
	Observacion  *string   `json:"observacion,omitempty"`
	FirmaEntrega *string   `json:"firma_entrega,omitempty"`
	Equipo       *Equipo   `json:"equipo,omitempty"`
	Personal     *Personal `json:"personal,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Devuelto struct {
	ID              uint64    `json:"id"`
	EquipoID        uint64    `json:"equipo_id"`
	PersonalID      uint64    `json:"personal_id"`
	FechaDevolucion time.Time `json:"fecha_devolucion"`
	Motivo          *string   `json:"motivo,omitempty"`
	EstadoEquipo    *string   `json:"estado_equipo,omitempty"`
	Equipo          *Equipo   `json:"equipo,omitempty"`
	Personal        *Personal `json:"personal,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
