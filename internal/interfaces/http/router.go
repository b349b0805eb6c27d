package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pecuadex/pecuadex-api/internal/application/analytics"
	"github.com/pecuadex/pecuadex-api/internal/application/auth"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/application/orders"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RoleUC       *auth.RoleUseCase
	ProductoUC   *usecase.ProductoUseCase
	PiezaUC      *usecase.PiezaUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	ComponenteUC *usecase.ComponenteUseCase
	ManualUC     *usecase.ManualUseCase
	ComentarioUC *usecase.ComentarioUseCase
	ClienteUC    *usecase.ClienteUseCase
	CotizacionUC *usecase.CotizacionUseCase
	MovimientoUC *inventory.MovimientoUseCase
	CompraUC     *orders.CompraUseCase
	VentaUC      *orders.VentaUseCase
	DashboardUC  *analytics.DashboardUseCase

	JWTSecret string
	Log       *logger.Logger

	AppName     string
	CORSOrigins string // lista separada por comas
	UploadDir   string // vacío = no se sirven archivos estáticos
	UploadURL   string
	// AuthRateLimit peticiones por minuto e IP a login/registro/recuperación; 0 lo desactiva.
	AuthRateLimit int
}

// NewApp crea la aplicación Fiber con el manejo de errores y los middlewares comunes y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: ErrorHandler,
		BodyLimit:    int(usecase.MaxManualSize) + 1<<20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))
	if deps.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  deps.CORSOrigins,
			AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
			AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
			ExposeHeaders: HeaderTotalCount + "," + HeaderTotalPages + "," + HeaderPage + "," + HeaderPageSize + "," + HeaderPageInfo,
		}))
	}
	if deps.UploadDir != "" {
		app.Static(deps.UploadURL, deps.UploadDir, fiber.Static{ByteRange: true})
	}
	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Los paths son los que consume el panel.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authed := AuthMiddleware(deps.JWTSecret)
	admin := []fiber.Handler{authed, RequireAdmin()}
	client := []fiber.Handler{authed, RequireClient()}
	with := func(mw []fiber.Handler, h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, mw...), h)
	}

	// Cuenta (invitado: registro, login y recuperación)
	authHandler := NewAuthHandler(deps.AuthUC)
	account := api.Group("/account")
	guest := []fiber.Handler{}
	if deps.AuthRateLimit > 0 {
		guest = append(guest, limiter.New(limiter.Config{
			Max:        deps.AuthRateLimit,
			Expiration: time.Minute,
		}))
	}
	account.Post("/register", with(guest, authHandler.Register)...)
	account.Post("/login", with(guest, authHandler.Login)...)
	account.Post("/refresh-token", with(guest, authHandler.RefreshToken)...)
	account.Post("/forgot-password", with(guest, authHandler.ForgotPassword)...)
	account.Post("/reset-password", with(guest, authHandler.ResetPassword)...)
	account.Get("/detail", authed, authHandler.Detail)
	account.Get("/", with(admin, authHandler.ListUsers)...)

	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := api.Group("/roles", admin...)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Post("/assign", roleHandler.Assign)

	// Catálogo
	productoHandler := NewProductoHandler(deps.ProductoUC)
	producto := api.Group("/producto")
	producto.Get("/ListaProductos", productoHandler.List)
	producto.Get("/ObtenerProducto/:id", productoHandler.Get)
	producto.Post("/AgregarProducto", with(admin, productoHandler.Create)...)
	producto.Put("/ModificarProducto/:id", with(admin, productoHandler.Update)...)
	producto.Delete("/EliminarProducto/:id", with(admin, productoHandler.Delete)...)
	producto.Post("/AgregarProductoConManual", with(admin, productoHandler.CreateConManual)...)
	producto.Put("/ModificarProductoConManual/:id", with(admin, productoHandler.UpdateConManual)...)
	producto.Delete("/EliminarProductoConManual/:id", with(admin, productoHandler.Delete)...)

	piezaHandler := NewPiezaHandler(deps.PiezaUC)
	pieza := api.Group("/pieza", admin...)
	pieza.Get("/ListaPiezas", piezaHandler.List)
	pieza.Post("/AgregarPiezas", piezaHandler.Create)
	pieza.Put("/ModificarPieza/:id", piezaHandler.Update)
	pieza.Delete("/EliminarPieza/:id", piezaHandler.Delete)

	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores := api.Group("/proveedores", admin...)
	proveedores.Get("/ListaProveedores", proveedorHandler.List)
	proveedores.Post("/AgregarProveedores", proveedorHandler.Create)
	proveedores.Put("/ModificarProveedor/:id", proveedorHandler.Update)
	proveedores.Delete("/EliminarProveedor/:id", proveedorHandler.Delete)

	componenteHandler := NewComponenteHandler(deps.ComponenteUC)
	componentes := api.Group("/componentesproducto", admin...)
	componentes.Get("/ListaComponentesProductos", componenteHandler.List)
	componentes.Post("/AgregarComponentesProducto", componenteHandler.Create)
	componentes.Delete("/EliminarComponentesProducto/:productoId/:piezaId", componenteHandler.Delete)
	componentes.Get("/CostoProducto/:productoId", componenteHandler.Costo)

	manualHandler := NewManualHandler(deps.ManualUC)
	manual := api.Group("/manual", authed)
	manual.Get("/ObtenerManualPorProducto/:id", manualHandler.ListByProducto)
	manual.Get("/ListaManuales", RequireAdmin(), manualHandler.List)
	manual.Post("/AgregarManual", RequireAdmin(), manualHandler.Create)
	manual.Delete("/EliminarManual/:id", RequireAdmin(), manualHandler.Delete)

	// Compras, ventas y kardex
	ordersHandler := NewOrdersHandler(deps.CompraUC, deps.VentaUC)
	compras := api.Group("/compras", admin...)
	compras.Get("/ListaCompras", ordersHandler.ListCompras)
	compras.Post("/AgregarCompra", ordersHandler.CreateCompra)
	ventas := api.Group("/ventas", admin...)
	ventas.Get("/ListaVentas", ordersHandler.ListVentas)
	ventas.Post("/AgregarVenta", ordersHandler.CreateVenta)

	inventoryHandler := NewInventoryHandler(deps.MovimientoUC)
	movimientos := api.Group("/movimientospieza", admin...)
	movimientos.Get("/ListaMovimientosPieza", inventoryHandler.List)
	movimientos.Post("/AgregarMovimentoPieza", inventoryHandler.RegisterMovement)

	// Reseñas
	comentarioHandler := NewComentarioHandler(deps.ComentarioUC)
	comentarios := api.Group("/comentarios")
	comentarios.Get("/ListaComentarios", comentarioHandler.List)
	comentarios.Get("/ObtenerPorProducto/:id", comentarioHandler.ListByProducto)
	comentarios.Get("/MisComentarios", with(client, comentarioHandler.Mine)...)
	comentarios.Post("/AgregarComentario", with(client, comentarioHandler.Create)...)
	comentarios.Put("/ModificarComentario/:id", with(client, comentarioHandler.Update)...)
	comentarios.Delete("/EliminarComentario/:id", authed, comentarioHandler.Delete)

	// Portal del cliente
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	cliente := api.Group("/comprascliente", client...)
	cliente.Get("/ListaComprasCliente", clienteHandler.Compras)
	cliente.Get("/ClienteManualProductos", clienteHandler.Manuales)
	cliente.Post("/comment", comentarioHandler.Create)

	// Cotizaciones
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC)
	cotizaciones := api.Group("/cotizaciones")
	cotizaciones.Post("/SolicitarCotizacion", OptionalAuth(deps.JWTSecret), cotizacionHandler.Solicitar)
	cotizaciones.Post("/EstimarPrecio", cotizacionHandler.Estimar)
	cotizaciones.Get("/ListarCotizaciones", with(admin, cotizacionHandler.List)...)
	cotizaciones.Put("/CambiarEstado/:id", with(admin, cotizacionHandler.CambiarEstado)...)
	cotizaciones.Get("/:id/pdf", with(admin, cotizacionHandler.PDF)...)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/Resumen", with(admin, dashboardHandler.Resumen)...)
}
