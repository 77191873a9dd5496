package dto

import (
	"time"

	"eduinfo_backend/internals/features/activites/model"
)

// ============================
// Response DTO
// ============================

type ActiviteDTO struct {
	ID            uint      `json:"id"`
	Titre         string    `json:"titre"`
	Description   string    `json:"description"`
	FichierJoint  *string   `json:"fichier_joint,omitempty"`
	ClassesCibles string    `json:"classes_cibles"`
	DateCreation  time.Time `json:"date_creation"`
}

// Vue élève : l'activité plus l'état de complétion de l'élève connecté.
type ActiviteEleveDTO struct {
	ActiviteDTO
	Completee bool `json:"completee"`
}

// Une ligne de progression par élève ciblé.
type ProgressionEleveDTO struct {
	EleveID        uint       `json:"eleve_id"`
	Nom            string     `json:"nom"`
	Prenom         string     `json:"prenom"`
	Classe         string     `json:"classe"`
	Completee      bool       `json:"completee"`
	DateCompletion *time.Time `json:"date_completion,omitempty"`
}

type ProgressionDTO struct {
	Activite      ActiviteDTO           `json:"activite"`
	TotalCibles   int                   `json:"total_cibles"`
	TotalComplete int                   `json:"total_complete"`
	Eleves        []ProgressionEleveDTO `json:"eleves"`
}

// ============================
// Request DTO
// ============================

type UpdateActiviteRequest struct {
	Titre         *string `json:"titre" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description" validate:"omitempty,min=1"`
	ClassesCibles *string `json:"classes_cibles" validate:"omitempty,min=1,max=500"`
}

type CompleterActiviteRequest struct {
	EleveID    uint `json:"eleve_id" validate:"required,gt=0"`
	ActiviteID uint `json:"activite_id" validate:"required,gt=0"`
}

// ============================
// Converter
// ============================

func ToActiviteDTO(m model.ActiviteModel) ActiviteDTO {
	return ActiviteDTO{
		ID:            m.ID,
		Titre:         m.Titre,
		Description:   m.Description,
		FichierJoint:  m.FichierJoint,
		ClassesCibles: m.ClassesCibles,
		DateCreation:  m.DateCreation,
	}
}

func ToActiviteDTOs(ms []model.ActiviteModel) []ActiviteDTO {
	out := make([]ActiviteDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToActiviteDTO(m))
	}
	return out
}
