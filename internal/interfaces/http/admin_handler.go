package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/mail"
)

// AdminHandler operaciones administrativas: corrida del chequeo de bajo stock
// y diagnóstico de la configuración del notifier.
type AdminHandler struct {
	stockCheck *stock.StockCheckUseCase
	notifier   *mail.SMTPNotifier
}

// NewAdminHandler construye el handler.
func NewAdminHandler(stockCheck *stock.StockCheckUseCase, notifier *mail.SMTPNotifier) *AdminHandler {
	return &AdminHandler{stockCheck: stockCheck, notifier: notifier}
}

// StockCheck godoc
// @Summary      Recorrer el inventario y notificar productos bajo umbral
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockCheckResponse
// @Router       /api/admin/stock-check [post]
func (h *AdminHandler) StockCheck(c *fiber.Ctx) error {
	out, err := h.stockCheck.Run(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// NotifierConfig godoc
// @Summary      Configuración efectiva del notifier SMTP (password enmascarado)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/notifier-config [get]
func (h *AdminHandler) NotifierConfig(c *fiber.Ctx) error {
	missing := h.notifier.MissingKeys()
	if missing == nil {
		missing = []string{}
	}
	return c.JSON(fiber.Map{
		"settings":   h.notifier.DebugConfig(),
		"missing":    missing,
		"configured": len(missing) == 0,
	})
}
