package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError convertit une erreur sortie d'une Transaction (en général
// un *fiber.Error) en réponse JSON cohérente. Sinon, 500 avec le message brut.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
