package route

import (
	"eduinfo_backend/internals/features/messages/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Routes partagées (élève et enseignant authentifiés) : envoi et fil élève.
func MessageRoutes(api fiber.Router, db *gorm.DB) {
	messageCtrl := controller.NewMessageController(db)

	api.Post("/envoyer-message/", messageCtrl.EnvoyerMessage)             // 📤 Dans les deux sens
	api.Get("/eleve/:eleve_id/messages/", messageCtrl.GetMessagesForEleve) // 📄 Fil (vue élève)
}

// Routes enseignant : boîte de réception et administration.
func MessageEnseignantRoutes(api fiber.Router, db *gorm.DB) {
	messageCtrl := controller.NewMessageController(db)

	teacher := api.Group("/teacher")
	teacher.Get("/messages/:eleve_id/", messageCtrl.GetMessagesForEnseignant) // 📄 Fil + marquage lu
	teacher.Get("/conversations/", messageCtrl.GetConversations)              // 📥 Boîte de réception

	admin := api.Group("/messages-admin")
	admin.Get("/", messageCtrl.GetAllMessages)      // 🗂️ Tous les messages
	admin.Delete("/:id", messageCtrl.DeleteMessage) // 🗑️ Suppression
}
