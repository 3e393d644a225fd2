// initdb crea (si no existe) el esquema de la base de datos: products,
// movements y users. Es idempotente; puede correrse en cada despliegue.
//
// Uso: go run ./cmd/initdb
// Lee la conexión de las mismas variables de entorno que la API (DATABASE_URL
// o DB_HOST, DB_PORT, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tu-usuario/almacen-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-api/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id             UUID PRIMARY KEY,
	sku            TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL,
	quantity       INTEGER NOT NULL DEFAULT 0,
	min_threshold  INTEGER NOT NULL DEFAULT 0 CHECK (min_threshold >= 0),
	allow_negative BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS movements (
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	delta      INTEGER NOT NULL,
	note       TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_movements_product_created
	ON movements (product_id, created_at DESC);

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "Crear esquema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Esquema creado/verificado: products, movements, users")
}
