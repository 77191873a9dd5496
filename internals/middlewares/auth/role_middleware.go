package auth

import (
	"github.com/gofiber/fiber/v2"

	"eduinfo_backend/internals/constants"
	helperAuth "eduinfo_backend/internals/helpers/auth"
)

// OnlyRoles autorise l'accès si le rôle du token figure dans roles.
func OnlyRoles(forbiddenMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized - rôle absent du token",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if forbiddenMessage == "" {
			forbiddenMessage = "Accès refusé"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": forbiddenMessage,
		})
	}
}

func EnseignantOnly(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorEnseignant(feature), constants.RoleEnseignant)
}
