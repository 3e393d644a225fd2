package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/reporting"
)

// ReportHandler expone el reporte de inventario en JSON y sus descargas.
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de inventario en JSON
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  report.Report
// @Router       /api/report [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	rep, err := h.uc.Build()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rep)
}

// Download godoc
// @Summary      Descargar el reporte (csv, pdf o xlsx)
// @Tags         reports
// @Security     Bearer
// @Param        format  path  string  true  "csv | pdf | xlsx"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/report/{format} [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	format := c.Params("format")
	export, err := h.uc.ExportAs(format)
	if err != nil {
		if errors.Is(err, reporting.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: "formato no soportado: use csv, pdf o xlsx"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, export.Filename))
	return c.Send(export.Data)
}
