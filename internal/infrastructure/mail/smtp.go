// Package mail adaptadores de ports.Mailer: SMTP real o solo log cuando no hay servidor configurado.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/pkg/config"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer envía correo con autenticación PLAIN.
type SMTPMailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Send arma el mensaje y lo entrega. net/smtp no acepta contexto: solo se revisa antes de conectar.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := buildEmail(m.from, msg)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

func buildEmail(from string, msg ports.Mail) (*email.Email, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("mailer: sin destinatarios")
	}
	e := email.NewEmail()
	e.From = from
	e.To = msg.To
	e.Subject = msg.Subject
	if msg.Text != "" {
		e.Text = []byte(msg.Text)
	}
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	for _, a := range msg.Attachments {
		ctype := a.ContentType
		if ctype == "" {
			ctype = "application/octet-stream"
		}
		if _, err := e.Attach(bytes.NewReader(a.Content), a.FileName, ctype); err != nil {
			return nil, fmt.Errorf("mailer: adjuntar %s: %w", a.FileName, err)
		}
	}
	return e, nil
}

// LogMailer registra el correo en el log en lugar de enviarlo (desarrollo, SMTP_HOST vacío).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.Mail) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.FileName)
	}
	m.log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Strs("attachments", names).
		Str("body", msg.Text).
		Msg("correo no enviado: SMTP sin configurar")
	return nil
}

// New elige el adaptador según la configuración.
func New(cfg config.SMTPConfig, log *logger.Logger) ports.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}
