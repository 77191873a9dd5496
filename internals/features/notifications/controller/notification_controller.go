package controller

import (
	"strings"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/notifications/dto"
	"eduinfo_backend/internals/features/notifications/model"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (ctrl *NotificationController) eleveIDFromPath(c *fiber.Ctx) (uint, *fiber.Error) {
	eleveID, err := c.ParamsInt("eleve_id")
	if err != nil || eleveID <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "eleve_id invalide")
	}
	if !helperAuth.CanActForEleve(c, uint(eleveID)) {
		return 0, fiber.NewError(fiber.StatusForbidden, "Accès réservé à l'élève concerné")
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, eleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, fiber.NewError(fiber.StatusNotFound, "Élève introuvable")
		}
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}
	return uint(eleveID), nil
}

// =======================
// 🔔 Notifications d'un élève
// GET /eleve/:eleve_id/notifications/?lu=true|false
// =======================
func (ctrl *NotificationController) GetNotificationsForEleve(c *fiber.Ctx) error {
	eleveID, ferr := ctrl.eleveIDFromPath(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	q := ctrl.DB.Where("destinataire_id = ?", eleveID)
	switch strings.ToLower(c.Query("lu")) {
	case "true":
		q = q.Where("lu = ?", true)
	case "false":
		q = q.Where("lu = ?", false)
	}

	var notifications []model.NotificationModel
	if err := q.Order("date_creation DESC").Find(&notifications).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des notifications")
	}

	return helper.JsonList(c, "Vos notifications", dto.ToNotificationDTOs(notifications), nil)
}

// =======================
// ✅ Marquer une notification lue
// POST /eleve/:eleve_id/notifications/:notification_id/mark-as-read/
// =======================
// Idempotent : re-marquer une notification déjà lue renvoie "déjà lue".
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	eleveID, ferr := ctrl.eleveIDFromPath(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	notifID, err := c.ParamsInt("notification_id")
	if err != nil || notifID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "notification_id invalide")
	}

	var notif model.NotificationModel
	if err := ctrl.DB.
		Where("id = ? AND destinataire_id = ?", notifID, eleveID).
		First(&notif).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de la notification")
	}

	if notif.Lu {
		return helper.JsonOK(c, "Notification déjà lue", dto.ToNotificationDTO(notif))
	}

	if err := ctrl.DB.Model(&notif).Update("lu", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du marquage de la notification")
	}
	notif.Lu = true

	return helper.JsonOK(c, "Notification marquée comme lue", dto.ToNotificationDTO(notif))
}

// =======================
// ✅ Tout marquer lu
// POST /eleve/:eleve_id/notifications/mark-all-as-read/
// =======================
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	eleveID, ferr := ctrl.eleveIDFromPath(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	res := ctrl.DB.Model(&model.NotificationModel{}).
		Where("destinataire_id = ? AND lu = ?", eleveID, false).
		Update("lu", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du marquage des notifications")
	}

	return helper.JsonOK(c, "Notifications marquées comme lues", fiber.Map{
		"marquees": res.RowsAffected,
	})
}
