package route

import (
	"eduinfo_backend/internals/features/eleves/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Gestion des élèves, réservée à l'enseignant (guard posé par le groupe parent).
func EleveEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	eleveCtrl := controller.NewEleveController(db)

	eleves := api.Group("/eleves")
	eleves.Get("/", eleveCtrl.GetAllEleves)      // 📄 Liste (filtres classe/search)
	eleves.Post("/", eleveCtrl.CreateEleve)      // ➕ Création
	eleves.Get("/:id", eleveCtrl.GetEleveByID)   // 🔍 Détail
	eleves.Put("/:id", eleveCtrl.UpdateEleve)    // ✏️ Mise à jour
	eleves.Delete("/:id", eleveCtrl.DeleteEleve) // 🗑️ Suppression + dépendances
}
