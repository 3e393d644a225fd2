package reporting

import "github.com/tu-usuario/almacen-api/internal/domain/report"

// Renderer convierte el modelo de reporte en bytes de un formato concreto
// (CSV, PDF, XLSX). Los renderers no clasifican: consumen el Status que ya
// trae cada fila.
type Renderer interface {
	Render(rep *report.Report) ([]byte, error)
	ContentType() string
}
