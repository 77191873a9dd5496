// internals/features/messages/model/message_model.go
package model

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

const (
	ExpediteurEleve      = "eleve"
	ExpediteurEnseignant = "enseignant"
)

type MessageModel struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	EleveID    uint      `gorm:"not null;column:eleve_id;index" json:"eleve"`
	Contenu    string    `gorm:"type:text;not null;column:contenu" json:"contenu"`
	Expediteur string    `gorm:"size:20;not null;column:expediteur" json:"expediteur"`
	Lu         bool      `gorm:"not null;default:false;column:lu" json:"lu"`
	DateEnvoi  time.Time `gorm:"not null;autoCreateTime;column:date_envoi" json:"date_envoi"`

	Eleve *eleveModel.EleveModel `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MessageModel) TableName() string { return "messages" }
