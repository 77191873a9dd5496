package route

import (
	"eduinfo_backend/internals/features/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Notifications d'un élève : consultation et marquage lu.
func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	notifCtrl := controller.NewNotificationController(db)

	notifs := api.Group("/eleve/:eleve_id/notifications")
	notifs.Get("/", notifCtrl.GetNotificationsForEleve)                  // 🔔 Liste (filtre ?lu=)
	notifs.Post("/mark-all-as-read/", notifCtrl.MarkAllAsRead)           // ✅ Toutes
	notifs.Post("/:notification_id/mark-as-read/", notifCtrl.MarkAsRead) // ✅ Une seule
}
