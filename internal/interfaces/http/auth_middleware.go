package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
	"github.com/tu-usuario/retail-backoffice/pkg/jwt"
)

// Locals keys para la identidad y el scope resueltos en Fiber.
const (
	LocalUserID = "user_id"
	LocalScope  = "access_scope"
)

// AuthMiddleware valida el Bearer Token JWT, construye el AccessScope del
// caller y lo deja en c.Locals. El scope se construye exactamente una vez por
// request; los handlers lo pasan explícitamente a los casos de uso.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalScope, scope.ForUser(id.TenantID, id.StoreID, id.Level, id.Role, id.IsRoot))
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetScope devuelve el AccessScope del contexto (después del middleware de auth).
// El segundo valor es false si el middleware no corrió en esta ruta.
func GetScope(c *fiber.Ctx) (scope.AccessScope, bool) {
	v := c.Locals(LocalScope)
	if v == nil {
		return scope.AccessScope{}, false
	}
	sc, ok := v.(scope.AccessScope)
	return sc, ok
}
