package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activiteRoute "eduinfo_backend/internals/features/activites/route"
	exerciceRoute "eduinfo_backend/internals/features/exercices/route"
	fichierRoute "eduinfo_backend/internals/features/fichiers/route"
	messageRoute "eduinfo_backend/internals/features/messages/route"
	noteRoute "eduinfo_backend/internals/features/notes/route"
	notificationRoute "eduinfo_backend/internals/features/notifications/route"
)

// Espace élève : consultation de sa classe, complétions, soumissions,
// messagerie et notifications. L'enseignant y passe aussi (lecture de
// n'importe quel élève) ; les contrôleurs vérifient l'identité.
func EleveRoutes(api fiber.Router, db *gorm.DB) {
	fichierRoute.FichierEleveRoutes(api, db)
	activiteRoute.ActiviteEleveRoutes(api, db)
	exerciceRoute.ExerciceEleveRoutes(api, db)
	noteRoute.NoteEleveRoutes(api, db)
	messageRoute.MessageRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
}
