package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/scopesvc"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
)

// ScopeHandler expone lo que el caller puede ver: tenants, tiendas y capacidades.
type ScopeHandler struct {
	svc *scopesvc.Service
}

// NewScopeHandler construye el handler.
func NewScopeHandler(svc *scopesvc.Service) *ScopeHandler {
	return &ScopeHandler{svc: svc}
}

// Tenants godoc
// @Summary      Tenants accesibles para el caller
// @Tags         scope
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.TenantAccessDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/scope/tenants [get]
func (h *ScopeHandler) Tenants(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.svc.AccessibleTenants(c.Context(), sc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TenantAccessDTO, 0, len(list))
	for _, acc := range list {
		out = append(out, dto.TenantAccessDTO{
			ID:            acc.Tenant.ID,
			Name:          acc.Tenant.Name,
			CanApplyToAll: acc.CanApplyToAll,
		})
	}
	return c.JSON(out)
}

// Stores godoc
// @Summary      Tiendas accesibles para el caller
// @Tags         scope
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  string  false  "Filtrar por tenant (solo root)"
// @Success      200  {array}   dto.StoreAccessDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/scope/stores [get]
func (h *ScopeHandler) Stores(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.svc.AccessibleStores(c.Context(), sc, c.Query("tenant_id"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StoreAccessDTO, 0, len(list))
	for _, acc := range list {
		out = append(out, dto.StoreAccessDTO{
			ID:            acc.Store.ID,
			TenantID:      acc.Store.TenantID,
			Name:          acc.Store.Name,
			CanApplyToAll: acc.CanApplyToAll,
		})
	}
	return c.JSON(out)
}

// Capabilities godoc
// @Summary      Capacidades del caller según su nivel de privilegio
// @Tags         scope
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  scope.Capabilities
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/scope/capabilities [get]
func (h *ScopeHandler) Capabilities(c *fiber.Ctx) error {
	sc, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return c.JSON(h.svc.Capabilities(sc))
}
