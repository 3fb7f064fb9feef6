package router

import (
	"time"

	"github.com/kikehil/dental/internal/config"
	"github.com/kikehil/dental/internal/handler"
	"github.com/kikehil/dental/internal/infra"
	"github.com/kikehil/dental/internal/middleware"
	"github.com/kikehil/dental/internal/repository"
	"github.com/kikehil/dental/internal/service"
	"github.com/kikehil/dental/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, webhook *infra.WebhookNotifier) *gin.Engine {
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

	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	corteRepo := repository.NewCorteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pacienteRepo := repository.NewPacienteRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cajaSvc := service.NewCajaService(corteRepo, ventaRepo, configRepo, dispatcher, loc)
	ventaSvc := service.NewVentaService(ventaRepo, servicioRepo, productoRepo, pacienteRepo, cajaSvc, webhook, loc)
	configSvc := service.NewConfiguracionService(configRepo)
	catalogoSvc := service.NewCatalogoService(servicioRepo, productoRepo)
	pacienteSvc := service.NewPacienteService(pacienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc, authSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	configH := handler.NewConfiguracionHandler(configSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	pacientesH := handler.NewPacientesHandler(pacienteSvc)
	preciosH := handler.NewPreciosHandler(servicioRepo, productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, webhook))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Lista de precios — sin autenticación, sin efectos secundarios
	r.GET("/v1/precios", preciosH.ListaPrecios)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, doctor, recepcionista — declared per-endpoint
		v1.POST("/auth/verificar-admin", authH.VerificarAdmin)

		caja := v1.Group("/caja")
		{
			caja.GET("/estado", middleware.RequireRole("admin", "doctor", "recepcionista"), cajaH.Estado)
			caja.GET("/resumen", middleware.RequireRole("admin", "doctor", "recepcionista"), cajaH.Resumen)
			caja.POST("/saldo-inicial", middleware.RequireRole("admin", "recepcionista"), cajaH.AbrirSesion)
			caja.POST("/corte", middleware.RequireRole("admin", "recepcionista"), cajaH.ProcesarCorte)
			caja.POST("/corte-manual", middleware.RequireRole("admin", "recepcionista"), cajaH.CorteManual)
			caja.GET("/historial", middleware.RequireRole("admin", "recepcionista"), cajaH.Historial)
		}

		v1.POST("/ventas", middleware.RequireRole("admin", "doctor", "recepcionista"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("admin", "doctor", "recepcionista"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("admin", "doctor", "recepcionista"), ventasH.ObtenerVenta)

		// Catálogo — lectura para todos los roles, escritura solo admin
		v1.GET("/servicios", middleware.RequireRole("admin", "doctor", "recepcionista"), catalogoH.ListarServicios)
		v1.GET("/productos", middleware.RequireRole("admin", "doctor", "recepcionista"), catalogoH.ListarProductos)
		servicios := v1.Group("/servicios", middleware.RequireRole("admin"))
		{
			servicios.POST("", catalogoH.CrearServicio)
			servicios.PUT("/:id", catalogoH.ActualizarServicio)
			servicios.DELETE("/:id", catalogoH.DesactivarServicio)
		}
		productos := v1.Group("/productos", middleware.RequireRole("admin"))
		{
			productos.POST("", catalogoH.CrearProducto)
			productos.PUT("/:id", catalogoH.ActualizarProducto)
			productos.DELETE("/:id", catalogoH.DesactivarProducto)
		}

		pacientes := v1.Group("/pacientes", middleware.RequireRole("admin", "doctor", "recepcionista"))
		{
			pacientes.POST("", pacientesH.Crear)
			pacientes.GET("", pacientesH.Listar)
			pacientes.PUT("/:id", pacientesH.Actualizar)
			pacientes.DELETE("/:id", middleware.RequireRole("admin"), pacientesH.Desactivar)
		}

		configuracion := v1.Group("/configuracion")
		{
			configuracion.GET("/cortes", middleware.RequireRole("admin", "recepcionista"), configH.ObtenerCortes)
			configuracion.PUT("/cortes", middleware.RequireRole("admin"), configH.ActualizarCortes)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
