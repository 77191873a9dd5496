// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduinfo_backend/internals/configs"
	"eduinfo_backend/internals/constants"
	authMiddleware "eduinfo_backend/internals/middlewares/auth"
	routeDetails "eduinfo_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	routeDetails.PublicRoutes(public, db)

	// ===================== ÉLÈVE =====================
	// JWT obligatoire ; élève ou enseignant (les contrôleurs vérifient
	// que l'élève ne lit que ses propres ressources).
	log.Println("[INFO] Setting up ELEVE group...")
	eleve := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles("Session requise",
			constants.RoleEleve, constants.RoleEnseignant),
	)
	routeDetails.EleveRoutes(eleve, db)

	// ===================== ENSEIGNANT =====================
	log.Println("[INFO] Setting up ENSEIGNANT group...")
	enseignant := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.EnseignantOnly("gestion du portail"),
	)
	routeDetails.EnseignantRoutes(enseignant, db)
}
