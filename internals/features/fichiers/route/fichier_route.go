package route

import (
	"eduinfo_backend/internals/features/fichiers/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes enseignant : CRUD complet.
func FichierEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	fichierCtrl := controller.NewFichierController(db)

	fichiers := api.Group("/fichiers")
	fichiers.Get("/", fichierCtrl.GetAllFichiers)      // 📄 Tous les fichiers
	fichiers.Post("/", fichierCtrl.CreateFichier)      // ➕ Upload + notifications
	fichiers.Get("/:id", fichierCtrl.GetFichierByID)   // 🔍 Détail
	fichiers.Put("/:id", fichierCtrl.UpdateFichier)    // ✏️ Titre / ciblage
	fichiers.Delete("/:id", fichierCtrl.DeleteFichier) // 🗑️ Suppression
}

// Routes élève : lecture limitée à sa classe.
func FichierEleveRoutes(api fiber.Router, db *gorm.DB) {
	fichierCtrl := controller.NewFichierController(db)

	api.Get("/eleve/:eleve_id/fichiers/", fichierCtrl.GetFichiersForEleve) // 📄 Fichiers de ma classe
}
