// Package ports puertos de salida de la capa de aplicación. Los adaptadores viven en infrastructure.
package ports

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// ErrTokenNotFound el token no existe, ya se usó o expiró.
var ErrTokenNotFound = errors.New("token no encontrado")

// TokenStore guarda tokens de un solo uso (refresh y restablecimiento) con expiración.
// Take devuelve el valor y elimina la clave de forma atómica.
type TokenStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Take(ctx context.Context, key string) (string, error)
}

// Mail mensaje saliente.
type Mail struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Attachment archivo adjunto en memoria.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Mailer envío de correo.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// DocumentStore almacenamiento de manuales subidos. Save devuelve la clave interna y la URL pública.
type DocumentStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

// CotizacionRenderer genera el PDF de una cotización.
type CotizacionRenderer interface {
	Render(c *entity.Cotizacion) ([]byte, error)
}
