package route

import (
	"eduinfo_backend/internals/features/activites/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes enseignant : CRUD + suivi.
func ActiviteEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	activiteCtrl := controller.NewActiviteController(db)

	activites := api.Group("/activites")
	activites.Get("/", activiteCtrl.GetAllActivites)             // 📄 Toutes les activités
	activites.Post("/", activiteCtrl.CreateActivite)             // ➕ Publication + notifications
	activites.Get("/:id", activiteCtrl.GetActiviteByID)          // 🔍 Détail
	activites.Put("/:id", activiteCtrl.UpdateActivite)           // ✏️ Mise à jour
	activites.Delete("/:id", activiteCtrl.DeleteActivite)        // 🗑️ Suppression + complétions
	activites.Get("/:id/progress", activiteCtrl.GetProgression)  // 📊 Qui a complété
	activites.Post("/:id/rappel", activiteCtrl.EnvoyerRappel)    // 🔔 Rappel aux retardataires
}

// Routes élève : lecture + complétion.
func ActiviteEleveRoutes(api fiber.Router, db *gorm.DB) {
	activiteCtrl := controller.NewActiviteController(db)

	api.Get("/eleve/:eleve_id/activites/", activiteCtrl.GetActivitesForEleve) // 📄 Activités de ma classe
	api.Post("/completer-activite/", activiteCtrl.CompleterActivite)          // ✅ Marquer complétée
}
