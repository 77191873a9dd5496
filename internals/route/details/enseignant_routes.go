package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activiteRoute "eduinfo_backend/internals/features/activites/route"
	eleveRoute "eduinfo_backend/internals/features/eleves/route"
	exerciceRoute "eduinfo_backend/internals/features/exercices/route"
	fichierRoute "eduinfo_backend/internals/features/fichiers/route"
	messageRoute "eduinfo_backend/internals/features/messages/route"
	noteRoute "eduinfo_backend/internals/features/notes/route"
)

// Espace enseignant : gestion complète des ressources, correction,
// boîte de réception.
func EnseignantRoutes(api fiber.Router, db *gorm.DB) {
	eleveRoute.EleveEnseignantRoutes(api, db)
	fichierRoute.FichierEnseignantRoutes(api, db)
	activiteRoute.ActiviteEnseignantRoutes(api, db)
	exerciceRoute.ExerciceEnseignantRoutes(api, db)
	noteRoute.NoteEnseignantRoutes(api, db)
	messageRoute.MessageEnseignantRoutes(api, db)
}
