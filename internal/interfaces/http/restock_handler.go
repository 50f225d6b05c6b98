package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/restock"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
)

// RestockHandler maneja las peticiones HTTP del motor de reabastecimiento (protegido).
type RestockHandler struct {
	executor  *restock.ExecuteRestockUseCase
	validator *restock.Validator
}

// NewRestockHandler construye el handler.
func NewRestockHandler(executor *restock.ExecuteRestockUseCase, validator *restock.Validator) *RestockHandler {
	return &RestockHandler{executor: executor, validator: validator}
}

func toRestockItems(in []dto.RestockItemRequest) []restock.Item {
	items := make([]restock.Item, 0, len(in))
	for _, it := range in {
		items = append(items, restock.Item{ProductID: it.ProductID, Qty: it.Qty, UnitCost: it.UnitCost})
	}
	return items
}

// Execute godoc
// @Summary      Aplicar un lote de reabastecimiento
// @Description  Valida el lote y lo aplica en una sola transacción: o entran
//
//	todos los ítems o no entra ninguno.
//
// @Tags         restocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteRestockRequest  true  "items, supplier_ref, note"
// @Success      201   {object}  dto.ExecuteRestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restocks [post]
func (h *RestockHandler) Execute(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	userID := GetUserID(c)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ExecuteRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items requeridos"})
	}

	result, err := h.executor.Execute(c.Context(), sc, userID, toRestockItems(in.Items),
		restock.Options{SupplierRef: in.SupplierRef, Note: in.Note})
	if err != nil {
		var vErr *restock.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	items := make([]dto.RestockItemResultDTO, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, dto.RestockItemResultDTO{
			ProductID: it.ProductID,
			QtyAdded:  it.QtyAdded,
			NewStock:  it.NewStock,
			UnitCost:  it.UnitCost,
		})
	}
	warnings := result.Summary.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExecuteRestockResponse{
		StoreID:  result.StoreID,
		TenantID: result.TenantID,
		Items:    items,
		Summary: dto.RestockSummaryDTO{
			TotalItems:    result.Summary.TotalItems,
			TotalQuantity: result.Summary.TotalQuantity,
			TotalValue:    result.Summary.TotalValue,
			Warnings:      warnings,
		},
	})
}

// Validate godoc
// @Summary      Validar un lote de reabastecimiento sin aplicarlo
// @Description  Corre solo el pase de validación y devuelve errores y warnings.
// @Tags         restocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateRestockRequest  true  "items"
// @Success      200   {object}  dto.ValidateRestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/restocks/validate [post]
func (h *RestockHandler) Validate(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ValidateRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.validator.Validate(c.Context(), sc, toRestockItems(in.Items))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(dto.ValidateRestockResponse{
		IsValid:  result.IsValid,
		Errors:   errs,
		Warnings: warnings,
	})
}
