package main

import (
	"context"
	"net/http"
	"path/filepath"

	"gestion-system/internal/routes"
	"gestion-system/internal/services"
	"gestion-system/migrations"
	"gestion-system/pkg/config"
	"gestion-system/pkg/customvalidator"
	"gestion-system/pkg/database/postgresql"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/eventbus"
	"gestion-system/pkg/filestorage"
	applogger "gestion-system/pkg/logger"
	"gestion-system/pkg/service"
	"gestion-system/pkg/utils"
	appwebsocket "gestion-system/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync() //nolint:errcheck

	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Pánico recuperado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("No se pudieron registrar las reglas de validación", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	if err := postgresql.RunMigrations(dbConn, migrations.Embed); err != nil {
		logger.Fatal("No se pudieron aplicar las migraciones", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("No se pudo conectar a Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	uploadsDir, err := filepath.Abs(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("No se pudo resolver el directorio de uploads", zap.Error(err))
	}
	fileStorage, err := filestorage.NewLocalFileStorage(uploadsDir)
	if err != nil {
		logger.Fatal("No se pudo crear el almacenamiento de archivos", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	bus := eventbus.New(logger)
	hub := appwebsocket.NewHub(logger)
	go hub.Run()

	notificador := services.NewNotificadorService(hub, logger)
	notificador.RegistrarListeners(bus)

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, fileStorage, bus, hub, cfg, logger)

	logger.Info("Servidor escuchando", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Error al arrancar el servidor", zap.Error(err))
	}
}
