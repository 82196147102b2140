package seeders

type permisoSeed struct {
	Nombre      string
	Descripcion string
}

// permisosData es el catálogo completo de permisos que entiende el
// middleware de autorización. Los nombres siguen el patrón recurso:accion.
var permisosData = []permisoSeed{
	{"permisos:ver", "Consultar permisos y asignaciones de roles"},
	{"permisos:gestionar", "Crear, editar y asignar permisos a roles"},

	{"pedidos:ver", "Consultar pedidos de compra"},
	{"pedidos:crear", "Crear pedidos de compra"},
	{"pedidos:actualizar", "Editar pedidos de compra pendientes"},
	{"pedidos:eliminar", "Eliminar pedidos de compra pendientes"},
	{"pedidos:aprobar_compras", "Aprobar o rechazar en la etapa de compras"},
	{"pedidos:aprobar_gerencia", "Aprobar o rechazar en la etapa de gerencia"},
	{"pedidos:marcar_items", "Marcar items del pedido como comprados"},
	{"pedidos:seguimiento", "Actualizar los datos de seguimiento del pedido"},
	{"pedidos:exportar", "Exportar pedidos a Excel"},

	{"catalogos:ver", "Consultar catálogos de compras"},
	{"catalogos:gestionar", "Administrar catálogos de compras"},

	{"ubicaciones:ver", "Consultar sedes, áreas y dependencias"},
	{"ubicaciones:gestionar", "Administrar sedes, áreas y dependencias"},

	{"personal:ver", "Consultar el registro de personal"},
	{"personal:gestionar", "Administrar el registro de personal"},

	{"inventario:ver", "Consultar el inventario"},
	{"inventario:gestionar", "Administrar el inventario"},

	{"equipos:ver", "Consultar equipos, entregas y devoluciones"},
	{"equipos:gestionar", "Administrar equipos, entregas y devoluciones"},
}

var rolesData = []string{
	"Administrador",
	"Solicitante",
	"Compras",
	"Gerencia",
}

// rolPermisosData asigna a cada rol su subconjunto del catálogo. El
// Administrador recibe todos los permisos en el propio seeder.
var rolPermisosData = map[string][]string{
	"Solicitante": {
		"pedidos:ver", "pedidos:crear", "pedidos:actualizar", "pedidos:eliminar",
		"pedidos:exportar",
		"catalogos:ver", "ubicaciones:ver",
	},
	"Compras": {
		"pedidos:ver", "pedidos:aprobar_compras", "pedidos:marcar_items",
		"pedidos:seguimiento", "pedidos:exportar",
		"catalogos:ver", "catalogos:gestionar", "ubicaciones:ver",
		"inventario:ver", "inventario:gestionar",
	},
	"Gerencia": {
		"pedidos:ver", "pedidos:aprobar_gerencia", "pedidos:exportar",
		"catalogos:ver", "ubicaciones:ver",
	},
}
