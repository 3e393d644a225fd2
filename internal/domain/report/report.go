// Package report contiene la lógica pura del reporte de inventario: la
// clasificación OK/LOW y la construcción del modelo de reporte que consumen
// todos los renderers (JSON, CSV, PDF, XLSX). El predicado de bajo stock vive
// aquí y solo aquí: cualquier vista o formato de exportación debe usar
// Classify, nunca su propia comparación.
package report

import (
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// Status clasificación de stock de un producto.
type Status string

const (
	StatusOK  Status = "OK"
	StatusLow Status = "LOW"
)

// Classify devuelve LOW si y solo si la cantidad es estrictamente menor que el
// umbral mínimo. Cantidad igual al umbral es OK.
func Classify(p *entity.Product) Status {
	if p.Quantity < p.MinThreshold {
		return StatusLow
	}
	return StatusOK
}

// Row una fila del reporte, agnóstica de formato.
type Row struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	MinThreshold  int    `json:"min_threshold"`
	Status        Status `json:"status"`
	AllowNegative bool   `json:"allow_negative"`
}

// Report modelo de reporte completo. Low es la subsecuencia de Rows con
// estado LOW, en el mismo orden de entrada.
type Report struct {
	Rows        []Row     `json:"rows"`
	TotalSKUs   int       `json:"total_skus"`
	Low         []Row     `json:"low"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Build construye el reporte preservando el orden de entrada. El caller debe
// entregar los productos ya ordenados (por nombre) para salida determinista.
func Build(products []*entity.Product) *Report {
	rows := make([]Row, 0, len(products))
	var low []Row
	for _, p := range products {
		row := Row{
			SKU:           p.SKU,
			Name:          p.Name,
			Quantity:      p.Quantity,
			MinThreshold:  p.MinThreshold,
			Status:        Classify(p),
			AllowNegative: p.AllowNegative,
		}
		rows = append(rows, row)
		if row.Status == StatusLow {
			low = append(low, row)
		}
	}
	return &Report{
		Rows:        rows,
		TotalSKUs:   len(rows),
		Low:         low,
		GeneratedAt: time.Now().UTC(),
	}
}

// Filename nombre de archivo de exportación con timestamp UTC:
// inventory_report_20060102_150405Z.<ext>
func Filename(ext string, at time.Time) string {
	return fmt.Sprintf("inventory_report_%s.%s", at.UTC().Format("20060102_150405Z"), ext)
}
