package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// StockHandler maneja las entradas y salidas de stock (protegido).
type StockHandler struct {
	uc *stock.AdjustStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.AdjustStockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Add godoc
// @Summary      Agregar stock a un producto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "amount > 0, note opcional"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	return h.adjust(c, h.uc.Add)
}

// Remove godoc
// @Summary      Retirar stock de un producto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "amount > 0, note opcional"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/remove [post]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	return h.adjust(c, h.uc.Remove)
}

func (h *StockHandler) adjust(
	c *fiber.Ctx,
	op func(ctx context.Context, productID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error),
) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := op(c.Context(), id, in)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "amount debe ser un entero positivo"})
		case domain.ErrNegativeStockDenied:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NEGATIVE_STOCK_DENIED", Message: "el retiro dejaría stock negativo y el producto no lo permite"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
