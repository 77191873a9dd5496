// internals/features/notes/model/note_model.go
package model

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

// NoteModel : note générale sur 20, indépendante de tout exercice.
type NoteModel struct {
	ID              uint      `gorm:"primaryKey;column:id" json:"id"`
	EleveID         uint      `gorm:"not null;column:eleve_id;index" json:"eleve"`
	Note            float64   `gorm:"not null;column:note" json:"note"`
	Commentaire     string    `gorm:"type:text;not null;default:'';column:commentaire" json:"commentaire"`
	DateAttribution time.Time `gorm:"not null;autoCreateTime;column:date_attribution" json:"date_attribution"`

	Eleve *eleveModel.EleveModel `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NoteModel) TableName() string { return "notes" }
