package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/almacen-api/internal/application/reporting"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
)

var _ reporting.Renderer = (*XLSXRenderer)(nil)

const xlsxSheet = "Inventory"

// XLSXRenderer renderer del reporte en XLSX usando excelize. El marcado de
// filas LOW y cantidades negativas se hace con formato condicional sobre
// rangos amplios, así sobrevive si alguien edita la hoja a mano.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer XLSX.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

// ContentType tipo MIME de la descarga.
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render genera el libro completo y devuelve sus bytes.
func (r *XLSXRenderer) Render(rep *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	header := []interface{}{"SKU", "Name", "Quantity", "Min", "Status", "AllowNegative"}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: aplicar estilo de cabecera: %w", err)
	}

	for i, d := range rep.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{d.SKU, d.Name, d.Quantity, d.MinThreshold, string(d.Status), yesNo(d.AllowNegative)}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	for col, width := range map[string]float64{
		"A": 18, "B": 40, "C": 12, "D": 10, "E": 10, "F": 14,
	} {
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna %s: %w", col, err)
		}
	}

	if err := applyAlertFormats(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// applyAlertFormats pinta en rojo el estado LOW y las cantidades negativas.
func applyAlertFormats(f *excelize.File) error {
	alertStyle, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de alerta: %w", err)
	}

	if err := f.SetConditionalFormat(xlsxSheet, "E2:E50000", []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "equal to", Value: `"LOW"`, Format: &alertStyle},
	}); err != nil {
		return fmt.Errorf("xlsx: formato condicional de estado: %w", err)
	}
	if err := f.SetConditionalFormat(xlsxSheet, "C2:C50000", []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "less than", Value: "0", Format: &alertStyle},
	}); err != nil {
		return fmt.Errorf("xlsx: formato condicional de cantidad: %w", err)
	}
	return nil
}
