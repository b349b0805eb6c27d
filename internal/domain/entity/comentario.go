package entity

import "time"

// Comentario reseña de un cliente sobre un producto comprado.
type Comentario struct {
	ID           int64
	ProductoID   int64
	VentaID      *int64
	UsuarioID    string
	Descripcion  string
	Calificacion int
	Fecha        time.Time
}

// Manual documento descargable asociado a un producto.
type Manual struct {
	ID           int64
	ProductoID   int64
	Titulo       string
	URLDocumento string
	StorageKey   string // vacío si el documento es un enlace externo
}
