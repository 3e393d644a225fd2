package stock

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de cantidad y el
// append al ledger se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// NotifyOutcome resultado tri-estado de un intento de notificación.
// Ninguno de los tres es un error de la operación de ajuste.
type NotifyOutcome string

const (
	// NotifySent el transporte aceptó la entrega.
	NotifySent NotifyOutcome = "sent"
	// NotifySkippedConfig la configuración de entrega está incompleta;
	// esperado en muchos despliegues, degrada a warning.
	NotifySkippedConfig NotifyOutcome = "skipped_config"
	// NotifyTransportFailure configuración presente pero el envío falló
	// (red, auth o protocolo).
	NotifyTransportFailure NotifyOutcome = "transport_failure"
)

// Notifier puerto de alertas de bajo stock. Nunca devuelve error: cualquier
// fallo se reporta como outcome y el caller decide el mensaje al usuario.
type Notifier interface {
	Notify(ctx context.Context, product *entity.Product) NotifyOutcome
}
