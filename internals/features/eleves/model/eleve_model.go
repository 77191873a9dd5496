// internals/features/eleves/model/eleve_model.go
package model

import "time"

// EleveModel : identité unique (nom, prenom, classe), imposée par l'index.
type EleveModel struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Nom          string    `gorm:"size:100;not null;column:nom;uniqueIndex:uq_eleves_identite" json:"nom"`
	Prenom       string    `gorm:"size:100;not null;column:prenom;uniqueIndex:uq_eleves_identite" json:"prenom"`
	Classe       string    `gorm:"size:10;not null;column:classe;index;uniqueIndex:uq_eleves_identite" json:"classe"`
	DateCreation time.Time `gorm:"not null;autoCreateTime;column:date_creation" json:"date_creation"`
}

func (EleveModel) TableName() string { return "eleves" }
