package dto

import "github.com/pecuadex/pecuadex-api/internal/domain/entity"

// FromProducto convierte la entidad sin relaciones.
func FromProducto(p *entity.Producto) *ProductoResponse {
	if p == nil {
		return nil
	}
	return &ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		PrecioSugerido: p.PrecioSugerido,
		Imagen:         p.Imagen,
		FechaRegistro:  p.FechaRegistro,
	}
}

// FromPieza convierte la entidad.
func FromPieza(p *entity.Pieza) *PiezaResponse {
	if p == nil {
		return nil
	}
	return &PiezaResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		UnidadMedida:  p.UnidadMedida,
		Descripcion:   p.Descripcion,
		FechaRegistro: p.FechaRegistro,
		Existencias:   p.Existencias,
		CostoPromedio: p.CostoPromedio,
	}
}

// FromProveedor convierte la entidad.
func FromProveedor(p *entity.Proveedor) *ProveedorResponse {
	if p == nil {
		return nil
	}
	return &ProveedorResponse{
		ID:            p.ID,
		NombreEmpresa: p.NombreEmpresa,
		Contacto:      p.Contacto,
		Telefono:      p.Telefono,
		Email:         p.Email,
	}
}

// FromManual convierte la entidad.
func FromManual(m *entity.Manual) ManualResponse {
	return ManualResponse{ID: m.ID, ProductoID: m.ProductoID, Titulo: m.Titulo, URLDocumento: m.URLDocumento}
}

// FromMovimiento convierte la entidad; pieza puede ser nil.
func FromMovimiento(m *entity.MovimientoPieza, pieza *entity.Pieza) MovimientoResponse {
	return MovimientoResponse{
		ID:             m.ID,
		PiezaID:        m.PiezaID,
		Pieza:          FromPieza(pieza),
		Fecha:          m.Fecha,
		TipoMovimiento: m.TipoMovimiento,
		Cantidad:       m.Cantidad,
		CostoUnitario:  m.CostoUnitario,
		CostoPromedio:  m.CostoPromedio,
		ValorDebe:      m.ValorDebe,
		ValorHaber:     m.ValorHaber,
		SaldoValor:     m.SaldoValor,
		Existencias:    m.Existencias,
		Referencia:     m.Referencia,
	}
}

// FromCotizacion convierte la entidad.
func FromCotizacion(c *entity.Cotizacion) CotizacionResponse {
	funcs := c.FuncionalidadesRequeridas
	if funcs == nil {
		funcs = []string{}
	}
	return CotizacionResponse{
		ID:                        c.ID,
		NombreCliente:             c.NombreCliente,
		EmailCliente:              c.EmailCliente,
		Telefono:                  c.Telefono,
		Empresa:                   c.Empresa,
		CantidadDispositivos:      c.CantidadDispositivos,
		CantidadAnimales:          c.CantidadAnimales,
		TipoGanado:                c.TipoGanado,
		Hectareas:                 c.Hectareas,
		FuncionalidadesRequeridas: funcs,
		Comentarios:               c.Comentarios,
		PrecioEstimado:            c.PrecioEstimado,
		Estado:                    c.Estado,
		Fecha:                     c.Fecha,
	}
}

// FromUsuario referencia pública de un usuario.
func FromUsuario(u *entity.User) *UsuarioRef {
	if u == nil {
		return nil
	}
	return &UsuarioRef{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
