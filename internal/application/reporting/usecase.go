package reporting

import (
	"errors"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/domain/report"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ErrUnsupportedFormat el formato pedido no tiene renderer registrado.
var ErrUnsupportedFormat = errors.New("formato de reporte no soportado")

// Export resultado de una exportación lista para descargar.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase construye el reporte de inventario y lo exporta. Todos los
// formatos comparten el mismo modelo (y por lo tanto el mismo predicado LOW).
type ReportUseCase struct {
	productRepo repository.ProductRepository
	renderers   map[string]Renderer // por extensión: csv, pdf, xlsx
}

// NewReportUseCase construye el caso de uso con los renderers disponibles.
func NewReportUseCase(productRepo repository.ProductRepository, renderers map[string]Renderer) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, renderers: renderers}
}

// Build arma el modelo de reporte sobre todos los productos ordenados por
// nombre (orden determinista para todas las salidas).
func (uc *ReportUseCase) Build() (*report.Report, error) {
	products, err := uc.productRepo.List("")
	if err != nil {
		return nil, err
	}
	return report.Build(products), nil
}

// ExportAs genera la descarga en el formato pedido (csv, pdf o xlsx).
func (uc *ReportUseCase) ExportAs(format string) (*Export, error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	rep, err := uc.Build()
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(rep)
	if err != nil {
		return nil, fmt.Errorf("render reporte %s: %w", format, err)
	}
	return &Export{
		Filename:    report.Filename(format, rep.GeneratedAt),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}
