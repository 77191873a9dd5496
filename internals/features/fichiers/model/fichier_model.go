// internals/features/fichiers/model/fichier_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

type FichierModel struct {
	ID      uint   `gorm:"primaryKey;column:id" json:"id"`
	Titre   string `gorm:"size:200;not null;column:titre" json:"titre"`
	Fichier string `gorm:"size:500;not null;column:fichier" json:"fichier"`
	// Métadonnées d'upload (nom original, content-type, taille).
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	ClassesCibles string         `gorm:"size:500;not null;default:all;column:classes_cibles" json:"classes_cibles"`
	DateUpload    time.Time      `gorm:"not null;autoCreateTime;column:date_upload" json:"date_upload"`
}

func (FichierModel) TableName() string { return "fichiers" }
