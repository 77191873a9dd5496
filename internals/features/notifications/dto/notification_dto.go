package dto

import (
	"time"

	"eduinfo_backend/internals/features/notifications/model"
)

type NotificationDTO struct {
	ID               uint      `json:"id"`
	Message          string    `json:"message"`
	Lu               bool      `json:"lu"`
	TypeNotification string    `json:"type_notification"`
	LienRelatif      *string   `json:"lien_relatif"`
	DateCreation     time.Time `json:"date_creation"`
}

func ToNotificationDTO(m model.NotificationModel) NotificationDTO {
	return NotificationDTO{
		ID:               m.ID,
		Message:          m.Message,
		Lu:               m.Lu,
		TypeNotification: m.TypeNotification,
		LienRelatif:      m.LienRelatif,
		DateCreation:     m.DateCreation,
	}
}

func ToNotificationDTOs(ms []model.NotificationModel) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToNotificationDTO(m))
	}
	return out
}
