// Package mail implementa el Notifier de bajo stock sobre SMTP (gomail).
// La configuración se inyecta al construir: no hay estado global ni recarga
// por request; el boundary de recarga es el reinicio del proceso.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/pkg/config"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

var _ stock.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier envía alertas de bajo stock por correo. Nunca devuelve error:
// config incompleta degrada a skipped_config y un fallo de envío a
// transport_failure; el ajuste de inventario ya quedó confirmado.
type SMTPNotifier struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewSMTPNotifier construye el notifier con la configuración SMTP.
func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

// MissingKeys devuelve las claves de configuración obligatorias que faltan.
// Con lista vacía el notifier está listo para enviar.
func (n *SMTPNotifier) MissingKeys() []string {
	var missing []string
	if n.cfg.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if n.cfg.Username == "" {
		missing = append(missing, "SMTP_USERNAME")
	}
	if n.cfg.Password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	if n.cfg.From == "" {
		missing = append(missing, "FROM_EMAIL")
	}
	if len(n.cfg.Recipients) == 0 {
		missing = append(missing, "ALERT_RECIPIENTS")
	}
	return missing
}

// Notify intenta enviar la alerta para el producto (ya actualizado).
func (n *SMTPNotifier) Notify(_ context.Context, product *entity.Product) stock.NotifyOutcome {
	if missing := n.MissingKeys(); len(missing) > 0 {
		n.log.Warn().
			Strs("missing", missing).
			Str("sku", product.SKU).
			Msg("alerta de bajo stock no enviada: configuración SMTP incompleta")
		return stock.NotifySkippedConfig
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.Recipients...)
	m.SetHeader("Subject", fmt.Sprintf("[Inventory Alert] Low stock for %s (SKU %s)", product.Name, product.SKU))
	m.SetBody("text/plain", fmt.Sprintf(
		"Product: %s (SKU: %s)\nQuantity now: %d\nThreshold: %d\nTime: %s\n\nPlease reorder or investigate.",
		product.Name, product.SKU, product.Quantity, product.MinThreshold,
		time.Now().UTC().Format(time.RFC3339),
	))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	d.SSL = n.cfg.Port == 465
	if n.cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: n.cfg.Host}
	}

	if err := d.DialAndSend(m); err != nil {
		n.log.Error().Err(err).
			Str("sku", product.SKU).
			Str("host", n.cfg.Host).
			Msg("fallo del transporte SMTP al enviar alerta de bajo stock")
		return stock.NotifyTransportFailure
	}

	n.log.Info().
		Str("sku", product.SKU).
		Int("quantity", product.Quantity).
		Int("threshold", product.MinThreshold).
		Msg("alerta de bajo stock enviada")
	return stock.NotifySent
}

// DebugConfig devuelve la configuración SMTP con la contraseña enmascarada,
// para el endpoint administrativo de diagnóstico.
func (n *SMTPNotifier) DebugConfig() map[string]string {
	password := ""
	if n.cfg.Password != "" {
		password = strings.Repeat("*", len(n.cfg.Password))
	}
	return map[string]string{
		"SMTP_HOST":        n.cfg.Host,
		"SMTP_PORT":        fmt.Sprintf("%d", n.cfg.Port),
		"SMTP_USERNAME":    n.cfg.Username,
		"SMTP_PASSWORD":    password,
		"SMTP_USE_TLS":     fmt.Sprintf("%t", n.cfg.UseTLS),
		"FROM_EMAIL":       n.cfg.From,
		"ALERT_RECIPIENTS": strings.Join(n.cfg.Recipients, ", "),
	}
}
