package route

import (
	"eduinfo_backend/internals/features/auth/controller"
	"eduinfo_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes : routes publiques, rate-limitées séparément.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := api.Group("/login", middlewares.LoginRateLimiter())
	auth.Post("/eleve/", authCtrl.LoginEleve)           // 🔑 Session élève
	auth.Post("/enseignant/", authCtrl.LoginEnseignant) // 🔑 Session enseignant
}
