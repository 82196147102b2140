package dto

type CreateProductoDTO struct {
	Nombre string  `json:"nombre" validate:"required,min=2,max=200"`
	Codigo *string `json:"codigo,omitempty"`
}

type UpdateProductoDTO = CreateProductoDTO

type CreateProductoServicioDTO struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=200"`
	Descripcion *string `json:"descripcion,omitempty"`
	Tipo        string  `json:"tipo" validate:"required,oneof=producto servicio"`
}

type UpdateProductoServicioDTO = CreateProductoServicioDTO

type CreateTipoSolicitudDTO struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=200"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type UpdateTipoSolicitudDTO = CreateTipoSolicitudDTO

type CreateSedeDTO struct {
	Nombre    string  `json:"nombre" validate:"required,min=2,max=200"`
	Direccion *string `json:"direccion,omitempty"`
}

type UpdateSedeDTO = CreateSedeDTO

type CreateAreaDTO struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=200"`
}

type UpdateAreaDTO = CreateAreaDTO

type CreateDependenciaDTO struct {
	Nombre string  `json:"nombre" validate:"required,min=2,max=200"`
	SedeID uint64  `json:"sede_id" validate:"required"`
	AreaID *uint64 `json:"area_id,omitempty"`
}

type UpdateDependenciaDTO = CreateDependenciaDTO
