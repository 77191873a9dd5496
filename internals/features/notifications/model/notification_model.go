// internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

// Types de notification (ensemble fermé).
const (
	TypeNewFile          = "new_file"
	TypeNewActivity      = "new_activity"
	TypeNewExercise      = "new_exercise"
	TypeGradeUpdated     = "grade_updated"
	TypeNewMessage       = "new_message"
	TypeActivityReminder = "activity_reminder"
)

type NotificationModel struct {
	ID               uint      `gorm:"primaryKey;column:id" json:"id"`
	DestinataireID   uint      `gorm:"not null;column:destinataire_id;index" json:"-"`
	Message          string    `gorm:"size:255;not null;column:message" json:"message"`
	Lu               bool      `gorm:"not null;default:false;column:lu" json:"lu"`
	TypeNotification string    `gorm:"size:50;not null;default:new_file;column:type_notification" json:"type_notification"`
	LienRelatif      *string   `gorm:"size:200;column:lien_relatif" json:"lien_relatif"`
	DateCreation     time.Time `gorm:"not null;autoCreateTime;column:date_creation" json:"date_creation"`

	Destinataire *eleveModel.EleveModel `gorm:"foreignKey:DestinataireID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NotificationModel) TableName() string { return "notifications" }
