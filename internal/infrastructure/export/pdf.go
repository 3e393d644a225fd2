package export

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/almacen-api/internal/application/reporting"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 192, Green: 0, Blue: 0}
)

var _ reporting.Renderer = (*PDFRenderer)(nil)

// PDFRenderer renderer del reporte en PDF usando Maroto v2. Las filas LOW y
// las cantidades negativas se marcan en rojo.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer PDF.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// ContentType tipo MIME de la descarga.
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render genera el documento completo y devuelve sus bytes.
func (r *PDFRenderer) Render(rep *report.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, tr := range tableRows(rep) {
		m.AddRows(tr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha de generación.
func headerRow(rep *report.Report) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Inventory Report", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generated: "+rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Name", 4, align.Left),
		h("Quantity", 2, align.Right),
		h("Min", 1, align.Right),
		h("Status", 2, align.Center),
		h("Neg.", 1, align.Center),
	)
}

// tableRows: una fila por producto. Estado LOW y cantidad negativa en rojo.
func tableRows(rep *report.Report) []core.Row {
	result := make([]core.Row, 0, len(rep.Rows))
	for _, d := range rep.Rows {
		qtyColor := (*props.Color)(nil)
		if d.Quantity < 0 {
			qtyColor = colorAlert
		}
		statusColor := (*props.Color)(nil)
		statusStyle := fontstyle.Normal
		if d.Status == report.StatusLow {
			statusColor = colorAlert
			statusStyle = fontstyle.Bold
		}

		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(d.SKU, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(d.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(strconv.Itoa(d.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor,
			})),
			col.New(1).Add(text.New(strconv.Itoa(d.MinThreshold), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(string(d.Status), props.Text{
				Size: 8, Align: align.Center, Top: 1, Style: statusStyle, Color: statusColor,
			})),
			col.New(1).Add(text.New(yesNo(d.AllowNegative), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
		))
	}
	return result
}

// summaryRow: totales del reporte.
func summaryRow(rep *report.Report) core.Row {
	lowColor := colorGray
	lowStyle := fontstyle.Normal
	if len(rep.Low) > 0 {
		lowColor = colorAlert
		lowStyle = fontstyle.Bold
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Total SKUs: %d", rep.TotalSKUs),
			props.Text{Size: 9, Top: 2, Left: 1},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Low stock: %d", len(rep.Low)),
			props.Text{Size: 9, Align: align.Right, Top: 2, Right: 1, Style: lowStyle, Color: lowColor},
		)),
	)
}
