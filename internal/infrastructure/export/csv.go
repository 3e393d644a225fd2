// Package export implementa los renderers de descarga del reporte de
// inventario (CSV, PDF, XLSX). Todos consumen el mismo modelo de dominio:
// ninguno recalcula el estado LOW por su cuenta.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tu-usuario/almacen-api/internal/application/reporting"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
)

var _ reporting.Renderer = (*CSVRenderer)(nil)

// CSVRenderer renderer del reporte en CSV plano.
type CSVRenderer struct{}

// NewCSVRenderer construye el renderer CSV.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

// ContentType tipo MIME de la descarga.
func (r *CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render genera el CSV con cabecera fija y una fila por producto, en el orden
// del reporte.
func (r *CSVRenderer) Render(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"SKU", "Name", "Quantity", "Min", "Status", "AllowNegative"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rep.Rows {
		record := []string{
			row.SKU,
			row.Name,
			strconv.Itoa(row.Quantity),
			strconv.Itoa(row.MinThreshold),
			string(row.Status),
			yesNo(row.AllowNegative),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
