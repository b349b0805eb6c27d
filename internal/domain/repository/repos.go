package repository

// Repos conjunto de repositorios sobre un mismo almacén (PostgreSQL o memoria).
type Repos struct {
	Productos   ProductoRepository
	Componentes ComponenteProductoRepository
	Piezas      PiezaRepository
	Proveedores ProveedorRepository
	Movimientos MovimientoPiezaRepository
	Compras     CompraRepository
	Ventas      VentaRepository
	Comentarios ComentarioRepository
	Manuales    ManualRepository
	Cotizac     CotizacionRepository
	Users       UserRepository
	Roles       RoleRepository
}
