package router

import (
	"time"

	"cotizador/internal/config"
	"cotizador/internal/handler"
	"cotizador/internal/infra"
	"cotizador/internal/middleware"
	"cotizador/internal/repository"
	"cotizador/internal/service"
	"cotizador/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	r.Use(middleware.RateLimiter(200, time.Minute)) // 200 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	maquinariaRepo := repository.NewMaquinariaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	zonaRepo := repository.NewZonaRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	catalogoSvc := service.NewCatalogoService(empleadoRepo, productoRepo, maquinariaRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	zonaSvc := service.NewZonaService(zonaRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, clienteRepo, zonaRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	zonasH := handler.NewZonasHandler(zonaSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("comercial", "supervisor", "administrador")
	backoffice := middleware.RequireRole("supervisor", "administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Cotizaciones — every role quotes; deletion stays back-office
		cot := v1.Group("/cotizaciones", todos)
		{
			cot.POST("", cotizacionesH.Crear)
			cot.POST("/preview", cotizacionesH.Preview)
			cot.GET("", cotizacionesH.Listar)
			cot.GET("/export", cotizacionesH.ExportarExcel)
			cot.GET("/:id", cotizacionesH.Obtener)
			cot.PUT("/:id", cotizacionesH.Actualizar)
			cot.PATCH("/:id/estado", cotizacionesH.CambiarEstado)
			cot.GET("/:id/pdf", cotizacionesH.DescargarPDF)
		}
		v1.DELETE("/cotizaciones/:id", backoffice, cotizacionesH.Eliminar)

		// Clientes
		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", backoffice, clientesH.Eliminar)

		// Catálogo — all roles read, back-office writes
		v1.GET("/empleados", todos, catalogoH.ListarEmpleados)
		v1.GET("/productos", todos, catalogoH.ListarProductos)
		v1.GET("/maquinaria", todos, catalogoH.ListarMaquinaria)

		emp := v1.Group("/empleados", backoffice)
		{
			emp.POST("", catalogoH.CrearEmpleado)
			emp.PUT("/:id", catalogoH.ActualizarEmpleado)
			emp.DELETE("/:id", catalogoH.EliminarEmpleado)
		}
		prods := v1.Group("/productos", backoffice)
		{
			prods.POST("", catalogoH.CrearProducto)
			prods.PUT("/:id", catalogoH.ActualizarProducto)
			prods.DELETE("/:id", catalogoH.EliminarProducto)
		}
		maq := v1.Group("/maquinaria", backoffice)
		{
			maq.POST("", catalogoH.CrearMaquinaria)
			maq.PUT("/:id", catalogoH.ActualizarMaquinaria)
			maq.DELETE("/:id", catalogoH.EliminarMaquinaria)
		}

		// Zonas de transporte
		v1.GET("/zonas", todos, zonasH.Listar)
		zonas := v1.Group("/zonas", backoffice)
		{
			zonas.POST("", zonasH.Crear)
			zonas.PUT("/:id", zonasH.Actualizar)
			zonas.DELETE("/:id", zonasH.Eliminar)
		}

		// Proveedores
		v1.GET("/proveedores", todos, proveedoresH.Listar)
		v1.GET("/proveedores/:id", todos, proveedoresH.Obtener)
		prov := v1.Group("/proveedores", backoffice)
		{
			prov.POST("", proveedoresH.Crear)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Usuarios — administrador only
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
