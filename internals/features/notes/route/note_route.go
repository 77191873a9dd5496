package route

import (
	"eduinfo_backend/internals/features/notes/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes enseignant : attribution et gestion des notes.
func NoteEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	noteCtrl := controller.NewNoteController(db)

	notes := api.Group("/notes")
	notes.Get("/", noteCtrl.GetAllNotes)      // 📄 Liste (filtre ?eleve=)
	notes.Post("/", noteCtrl.CreateNote)      // ➕ Attribution + notification
	notes.Put("/:id", noteCtrl.UpdateNote)    // ✏️ Mise à jour
	notes.Delete("/:id", noteCtrl.DeleteNote) // 🗑️ Suppression
}

// Routes élève : consultation de ses propres notes.
func NoteEleveRoutes(api fiber.Router, db *gorm.DB) {
	noteCtrl := controller.NewNoteController(db)

	api.Get("/eleve/:eleve_id/notes/", noteCtrl.GetNotesForEleve) // 📄 Mes notes
}
