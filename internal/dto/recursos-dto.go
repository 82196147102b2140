package dto

type CreatePersonalDTO struct {
	Nombres       string  `json:"nombres" validate:"required,min=2,max=120"`
	Apellidos     string  `json:"apellidos" validate:"required,min=2,max=120"`
	Documento     string  `json:"documento" validate:"required,min=5,max=30"`
	Cargo         *string `json:"cargo,omitempty"`
	DependenciaID *uint64 `json:"dependencia_id,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono      *string `json:"telefono,omitempty"`
	Activo        *bool   `json:"activo,omitempty"`
}

type UpdatePersonalDTO = CreatePersonalDTO

type CreateInventarioDTO struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=200"`
	Codigo      *string `json:"codigo,omitempty"`
	Categoria   *string `json:"categoria,omitempty"`
	Cantidad    int     `json:"cantidad" validate:"gte=0"`
	Unidad      *string `json:"unidad,omitempty"`
	Ubicacion   *string `json:"ubicacion,omitempty"`
	Observacion *string `json:"observacion,omitempty"`
}

type UpdateInventarioDTO = CreateInventarioDTO

type CreateEquipoDTO struct {
	Nombre           string  `json:"nombre" validate:"required,min=2,max=200"`
	Marca            *string `json:"marca,omitempty"`
	Modelo           *string `json:"modelo,omitempty"`
	Serial           *string `json:"serial,omitempty"`
	SedeID           *uint64 `json:"sede_id,omitempty"`
	DependenciaID    *uint64 `json:"dependencia_id,omitempty"`
	Estado           *string `json:"estado,omitempty" validate:"omitempty,oneof=activo mantenimiento baja"`
	FechaAdquisicion *string `json:"fecha_adquisicion,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Observacion      *string `json:"observacion,omitempty"`
}

type UpdateEquipoDTO = CreateEquipoDTO

type CreateCaracteristicaTecnicaDTO struct {
	EquipoID         uint64  `json:"equipo_id" validate:"required"`
	Procesador       *string `json:"procesador,omitempty"`
	MemoriaRAM       *string `json:"memoria_ram,omitempty"`
	Disco            *string `json:"disco,omitempty"`
	SistemaOperativo *string `json:"sistema_operativo,omitempty"`
	Observacion      *string `json:"observacion,omitempty"`
}

type UpdateCaracteristicaTecnicaDTO = CreateCaracteristicaTecnicaDTO

type CreateEntregaDTO struct {
	EquipoID     uint64  `json:"equipo_id" validate:"required"`
	PersonalID   uint64  `json:"personal_id" validate:"required"`
	FechaEntrega string  `json:"fecha_entrega" validate:"required,datetime=2006-01-02"`
	Observacion  *string `json:"observacion,omitempty"`
}

type UpdateEntregaDTO = CreateEntregaDTO

type CreateDevueltoDTO struct {
	EquipoID        uint64  `json:"equipo_id" validate:"required"`
	PersonalID      uint64  `json:"personal_id" validate:"required"`
	FechaDevolucion string  `json:"fecha_devolucion" validate:"required,datetime=2006-01-02"`
	Motivo          *string `json:"motivo,omitempty"`
	EstadoEquipo    *string `json:"estado_equipo,omitempty"`
}

type UpdateDevueltoDTO = CreateDevueltoDTO
