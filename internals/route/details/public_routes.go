package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "eduinfo_backend/internals/features/auth/route"
)

// Routes sans session : uniquement les logins.
func PublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(api, db)
}
