package entity

// Proveedor empresa a la que se compran piezas.
type Proveedor struct {
	ID            int64
	NombreEmpresa string
	Contacto      string
	Telefono      string
	Email         string
}
