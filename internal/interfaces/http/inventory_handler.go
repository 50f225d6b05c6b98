package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// InventoryHandler consultas de inventario y bitácora por tienda (protegido).
type InventoryHandler struct {
	invRepo   repository.InventoryRepository
	auditRepo repository.AuditLogRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(invRepo repository.InventoryRepository, auditRepo repository.AuditLogRepository) *InventoryHandler {
	return &InventoryHandler{invRepo: invRepo, auditRepo: auditRepo}
}

func toInventoryDTOs(items []repository.StoreInventoryItem) []dto.StoreInventoryItemDTO {
	out := make([]dto.StoreInventoryItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StoreInventoryItemDTO{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			ProductName:   it.ProductName,
			StockOnHand:   it.StockOnHand,
			LastUpdatedAt: it.LastUpdatedAt,
		})
	}
	return out
}

// List godoc
// @Summary      Inventario de la tienda del caller
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.StoreInventoryItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	items, err := h.invRepo.ListByStore(c.Context(), sc, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"items": toInventoryDTOs(items),
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// LowStock godoc
// @Summary      Productos por debajo de un umbral de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "umbral (default 10)"
// @Success      200  {array}   dto.StoreInventoryItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	threshold := int64(10)
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "threshold inválido"})
		}
		threshold = n
	}

	items, err := h.invRepo.ListBelow(c.Context(), sc, threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toInventoryDTOs(items))
}

// AuditLogs godoc
// @Summary      Bitácora de reabastecimientos visible bajo el scope
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.AuditLogDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *InventoryHandler) AuditLogs(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	logs, err := h.auditRepo.ListByTenant(c.Context(), sc, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AuditLogDTO, 0, len(logs))
	for _, l := range logs {
		var payload any
		if len(l.Payload) > 0 {
			_ = json.Unmarshal(l.Payload, &payload)
		}
		out = append(out, dto.AuditLogDTO{
			ID:         l.ID,
			TenantID:   l.TenantID,
			UserID:     l.UserID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			Payload:    payload,
			CreatedAt:  l.CreatedAt,
		})
	}
	return c.JSON(out)
}
