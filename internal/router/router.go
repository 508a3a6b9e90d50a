package router

import (
	"time"

	"parquetec/internal/config"
	"parquetec/internal/handler"
	"parquetec/internal/infra"
	"parquetec/internal/middleware"
	"parquetec/internal/repository"
	"parquetec/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, imagenes *infra.ImagenStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	txRunner := repository.NewTxRunner(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	equipoRepo := repository.NewEquipoRepository(db)
	auxiliarRepo := repository.NewAuxiliarRepository(db)
	historialRepo := repository.NewHistorialRepository(db)
	colaboradorRepo := repository.NewColaboradorRepository(db)
	celularRepo := repository.NewCelularRepository(db)
	softwareRepo := repository.NewSoftwareRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	equipoSvc := service.NewEquipoService(equipoRepo, auxiliarRepo, historialRepo, colaboradorRepo, txRunner, cfg.ReportStoragePath)
	auxiliarSvc := service.NewAuxiliarService(auxiliarRepo, equipoRepo)
	colaboradorSvc := service.NewColaboradorService(colaboradorRepo, txRunner)
	celularSvc := service.NewCelularService(celularRepo, colaboradorRepo)
	softwareSvc := service.NewSoftwareService(softwareRepo, equipoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	equiposH := handler.NewEquiposHandler(equipoSvc, imagenes)
	auxiliaresH := handler.NewAuxiliaresHandler(auxiliarSvc)
	colaboradoresH := handler.NewColaboradoresHandler(colaboradorSvc)
	celularesH := handler.NewCelularesHandler(celularSvc)
	softwareH := handler.NewSoftwareHandler(softwareSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.Static("/imagenes", imagenes.Dir())

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Notificaciones push de vencimientos (el token viaja en el query string
	// porque los websockets del navegador no mandan headers custom)
	r.GET("/ws/notificaciones", middleware.JWTAuthQuery(cfg.JWTSecret), handler.Notificaciones(rdb))

	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: consulta, tecnico, administrador — declared per-group
		lectura := middleware.RequireRole("consulta", "tecnico", "administrador")
		escritura := middleware.RequireRole("tecnico", "administrador")

		v1.GET("/equipos", lectura, equiposH.Listar)
		v1.GET("/equipos/:id", lectura, equiposH.ObtenerPorID)
		v1.GET("/equipos/:id/historial", lectura, equiposH.Historial)
		v1.GET("/equipos/:id/historial-auxiliares", lectura, equiposH.HistorialAuxiliares)
		v1.GET("/equipos/:id/reporte", lectura, equiposH.Reporte)
		equipos := v1.Group("/equipos", escritura)
		{
			equipos.POST("", equiposH.Crear)
			equipos.PUT("/:id", equiposH.Actualizar)
			equipos.DELETE("/:id", equiposH.Eliminar)
		}

		v1.GET("/auxiliares", lectura, auxiliaresH.Listar)
		v1.GET("/auxiliares/:id", lectura, auxiliaresH.ObtenerPorID)
		auxiliares := v1.Group("/auxiliares", escritura)
		{
			auxiliares.POST("", auxiliaresH.Crear)
			auxiliares.PUT("/:id", auxiliaresH.Actualizar)
			auxiliares.DELETE("/:id", auxiliaresH.Desactivar)
			auxiliares.POST("/:id/restore", auxiliaresH.Restaurar)
			auxiliares.PUT("/:id/reasignar", auxiliaresH.Reasignar)
		}

		v1.GET("/colaboradores", lectura, colaboradoresH.Listar)
		v1.GET("/colaboradores/:id", lectura, colaboradoresH.ObtenerPorID)
		colaboradores := v1.Group("/colaboradores", escritura)
		{
			colaboradores.POST("", colaboradoresH.Crear)
			colaboradores.PUT("/:id", colaboradoresH.Actualizar)
			colaboradores.DELETE("/:id", colaboradoresH.Desactivar)
		}

		v1.GET("/celulares", lectura, celularesH.Listar)
		v1.GET("/celulares/:id", lectura, celularesH.ObtenerPorID)
		celulares := v1.Group("/celulares", escritura)
		{
			celulares.POST("", celularesH.Crear)
			celulares.PUT("/:id", celularesH.Actualizar)
			celulares.DELETE("/:id", celularesH.Desactivar)
			celulares.PATCH("/:id/reactivar", celularesH.Reactivar)
		}

		v1.GET("/software", lectura, softwareH.Listar)
		v1.GET("/software/:id", lectura, softwareH.ObtenerPorID)
		software := v1.Group("/software", escritura)
		{
			software.POST("", softwareH.Crear)
			software.PUT("/:id", softwareH.Actualizar)
			software.DELETE("/:id", softwareH.Eliminar)
			software.POST("/:id/licencias", softwareH.CrearLicencia)
		}
		licencias := v1.Group("/licencias", escritura)
		{
			licencias.DELETE("/:licenciaId", softwareH.EliminarLicencia)
			licencias.POST("/:licenciaId/asignaciones", softwareH.AsignarLicencia)
			licencias.DELETE("/:licenciaId/asignaciones/:idEquipo", softwareH.DesasignarLicencia)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
