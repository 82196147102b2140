package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/controllers"
	"gestion-system/internal/repositories"
	"gestion-system/internal/services"
	"gestion-system/pkg/config"
	"gestion-system/pkg/eventbus"
	"gestion-system/pkg/filestorage"
	"gestion-system/pkg/middleware"
	"gestion-system/pkg/service"
	appwebsocket "gestion-system/pkg/websocket"
)

// InitRouter construye todas las capas (repositorios → servicios →
// controladores) y registra los grupos de rutas bajo /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	fileStorage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	hub *appwebsocket.Hub,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: registrando rutas")

	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)

	// --- repositorios ---
	usuarioRepo := repositories.NewUsuarioRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	permisoRepo := repositories.NewPermisoRepository(dbConn, logger)
	pedidoRepo := repositories.NewPedidoRepository(dbConn, logger)
	productoRepo := repositories.NewProductoRepository(dbConn, logger)
	productoServicioRepo := repositories.NewProductoServicioRepository(dbConn, logger)
	tipoSolicitudRepo := repositories.NewTipoSolicitudRepository(dbConn, logger)
	sedeRepo := repositories.NewSedeRepository(dbConn, logger)
	areaRepo := repositories.NewAreaRepository(dbConn, logger)
	dependenciaRepo := repositories.NewDependenciaRepository(dbConn, logger)
	personalRepo := repositories.NewPersonalRepository(dbConn, logger)
	inventarioRepo := repositories.NewInventarioRepository(dbConn, logger)
	equipoRepo := repositories.NewEquipoRepository(dbConn, logger)
	entregaRepo := repositories.NewEntregaRepository(dbConn, logger)
	devueltoRepo := repositories.NewDevueltoRepository(dbConn, logger)

	// --- servicios ---
	permisoService := services.NewPermisoService(permisoRepo, cacheRepo, txManager, logger)
	authService := services.NewAuthService(usuarioRepo, cacheRepo, jwtSvc, cfg, logger)
	perfilService := services.NewPerfilService(usuarioRepo, fileStorage, logger)
	pedidoService := services.NewPedidoService(
		pedidoRepo, dependenciaRepo, usuarioRepo, txManager, fileStorage, bus, logger)
	exportService := services.NewExportService(pedidoRepo, logger)
	productoService := services.NewProductoService(productoRepo, logger)
	productoServicioService := services.NewProductoServicioService(productoServicioRepo, logger)
	tipoSolicitudService := services.NewTipoSolicitudService(tipoSolicitudRepo, logger)
	ubicacionService := services.NewUbicacionService(sedeRepo, areaRepo, dependenciaRepo, logger)
	personalService := services.NewPersonalService(personalRepo, logger)
	inventarioService := services.NewInventarioService(inventarioRepo, logger)
	equipoService := services.NewEquipoService(equipoRepo, logger)
	movimientoService := services.NewMovimientoEquipoService(
		entregaRepo, devueltoRepo, equipoRepo, personalRepo, fileStorage, logger)

	// --- controladores ---
	authCtrl := controllers.NewAuthController(authService, logger)
	perfilCtrl := controllers.NewPerfilController(perfilService, logger)
	permisoCtrl := controllers.NewPermisoController(permisoService, logger)
	pedidoCtrl := controllers.NewPedidoController(pedidoService, exportService, logger)
	catalogoCtrl := controllers.NewCatalogoController(
		productoService, productoServicioService, tipoSolicitudService, logger)
	ubicacionCtrl := controllers.NewUbicacionController(ubicacionService, logger)
	personalCtrl := controllers.NewPersonalController(personalService, logger)
	inventarioCtrl := controllers.NewInventarioController(inventarioService, logger)
	equipoCtrl := controllers.NewEquipoController(equipoService, logger)
	movimientoCtrl := controllers.NewMovimientoEquipoController(movimientoService, logger)
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, logger)

	// El servicio de permisos alimenta al middleware con el mapa cacheado
	// de permisos por rol.
	authMW := middleware.NewAuthMiddleware(jwtSvc, permisoService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runPerfilRouter(secureGroup, perfilCtrl)
	runPermisoRouter(secureGroup, permisoCtrl, authMW)
	runPedidoRouter(secureGroup, pedidoCtrl, authMW)
	runCatalogoRouter(secureGroup, catalogoCtrl, authMW)
	runUbicacionRouter(secureGroup, ubicacionCtrl, authMW)
	runRecursosRouter(secureGroup, personalCtrl, inventarioCtrl, equipoCtrl, movimientoCtrl, authMW)
	runWebSocketRouter(api, wsCtrl)

	// Las firmas y fotos subidas se sirven como estáticos, fuera de /api.
	e.Static("/uploads", cfg.Server.UploadsDir)

	logger.Info("InitRouter: rutas registradas")
}
