// internals/features/activites/model/activite_model.go
package model

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

type ActiviteModel struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	Titre         string    `gorm:"size:200;not null;column:titre" json:"titre"`
	Description   string    `gorm:"type:text;not null;column:description" json:"description"`
	FichierJoint  *string   `gorm:"size:500;column:fichier_joint" json:"fichier_joint,omitempty"`
	ClassesCibles string    `gorm:"size:500;not null;default:all;column:classes_cibles" json:"classes_cibles"`
	DateCreation  time.Time `gorm:"not null;autoCreateTime;column:date_creation" json:"date_creation"`
}

func (ActiviteModel) TableName() string { return "activites" }

// CompletionActiviteModel : une ligne par (eleve, activite). L'index unique
// est ce qui garantit "au plus une ligne" face aux signaux concurrents.
type CompletionActiviteModel struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	EleveID        uint      `gorm:"not null;column:eleve_id;uniqueIndex:uq_completions_eleve_activite" json:"eleve_id"`
	ActiviteID     uint      `gorm:"not null;column:activite_id;uniqueIndex:uq_completions_eleve_activite" json:"activite_id"`
	Completee      bool      `gorm:"not null;default:false;column:completee" json:"completee"`
	DateCompletion time.Time `gorm:"not null;autoCreateTime;column:date_completion" json:"date_completion"`

	Eleve    *eleveModel.EleveModel `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE" json:"-"`
	Activite *ActiviteModel         `gorm:"foreignKey:ActiviteID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CompletionActiviteModel) TableName() string { return "completions_activite" }
