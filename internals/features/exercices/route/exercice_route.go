package route

import (
	"eduinfo_backend/internals/features/exercices/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes enseignant : CRUD + correction.
func ExerciceEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	exerciceCtrl := controller.NewExerciceController(db)

	exercices := api.Group("/exercices")
	exercices.Get("/", exerciceCtrl.GetAllExercices)                  // 📄 Tous les exercices
	exercices.Post("/", exerciceCtrl.CreateExercice)                  // ➕ Publication + notifications
	exercices.Get("/:id", exerciceCtrl.GetExerciceByID)               // 🔍 Détail
	exercices.Put("/:id", exerciceCtrl.UpdateExercice)                // ✏️ Mise à jour
	exercices.Delete("/:id", exerciceCtrl.DeleteExercice)             // 🗑️ Suppression + réponses
	exercices.Get("/:id/responses", exerciceCtrl.GetReponsesByExercice) // 📄 Copies reçues

	api.Put("/reponses-exercice/:id", exerciceCtrl.CorrigerReponse) // ✏️ Noter une copie
}

// Routes élève : lecture + soumission.
func ExerciceEleveRoutes(api fiber.Router, db *gorm.DB) {
	exerciceCtrl := controller.NewExerciceController(db)

	api.Get("/eleve/:eleve_id/exercices/", exerciceCtrl.GetExercicesForEleve) // 📄 Exercices de ma classe
	api.Post("/soumettre-reponse/", exerciceCtrl.SoumettreReponse)            // 📤 Rendre sa copie
}
