// internals/features/exercices/model/exercice_model.go
package model

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

type ExerciceModel struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	Titre         string    `gorm:"size:200;not null;column:titre" json:"titre"`
	Enonce        string    `gorm:"type:text;not null;column:enonce" json:"enonce"`
	ClassesCibles string    `gorm:"size:500;not null;default:all;column:classes_cibles" json:"classes_cibles"`
	DateCreation  time.Time `gorm:"not null;autoCreateTime;column:date_creation" json:"date_creation"`
}

func (ExerciceModel) TableName() string { return "exercices" }

// ReponseExerciceModel : une réponse par (eleve, exercice). Une resoumission
// écrase la réponse et repasse corrigee=false, note=NULL, même si déjà notée.
type ReponseExerciceModel struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	EleveID        uint      `gorm:"not null;column:eleve_id;uniqueIndex:uq_reponses_eleve_exercice" json:"eleve_id"`
	ExerciceID     uint      `gorm:"not null;column:exercice_id;uniqueIndex:uq_reponses_eleve_exercice" json:"exercice_id"`
	Reponse        string    `gorm:"type:text;not null;column:reponse" json:"reponse"`
	Corrigee       bool      `gorm:"not null;default:false;column:corrigee" json:"corrigee"`
	Note           *float64  `gorm:"column:note" json:"note"`
	DateSoumission time.Time `gorm:"not null;autoCreateTime;column:date_soumission" json:"date_soumission"`

	Eleve    *eleveModel.EleveModel `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE" json:"-"`
	Exercice *ExerciceModel         `gorm:"foreignKey:ExerciceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReponseExerciceModel) TableName() string { return "reponses_exercice" }
