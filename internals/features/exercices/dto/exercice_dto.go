package dto

import (
	"strings"
	"time"

	"eduinfo_backend/internals/features/exercices/model"
)

// ============================
// Response DTO
// ============================

type ExerciceDTO struct {
	ID            uint      `json:"id"`
	Titre         string    `json:"titre"`
	Enonce        string    `json:"enonce"`
	ClassesCibles string    `json:"classes_cibles"`
	DateCreation  time.Time `json:"date_creation"`
}

type ReponseDTO struct {
	ID             uint      `json:"id"`
	ExerciceID     uint      `json:"exercice_id"`
	Reponse        string    `json:"reponse"`
	Corrigee       bool      `json:"corrigee"`
	Note           *float64  `json:"note"`
	DateSoumission time.Time `json:"date_soumission"`
}

// Vue enseignant : la réponse plus l'identité de son auteur.
type ReponseAvecEleveDTO struct {
	ReponseDTO
	EleveID uint   `json:"eleve_id"`
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Classe  string `json:"classe"`
}

// Vue élève : l'exercice plus sa propre réponse (nil tant que rien n'est soumis).
type ExerciceEleveDTO struct {
	ExerciceDTO
	ReponseEleve *ReponseDTO `json:"reponse_eleve"`
}

// ============================
// Request DTO
// ============================

type CreateExerciceRequest struct {
	Titre         string `json:"titre" validate:"required,min=1,max=200"`
	Enonce        string `json:"enonce" validate:"required,min=1"`
	ClassesCibles string `json:"classes_cibles" validate:"omitempty,max=500"`
}

type UpdateExerciceRequest struct {
	Titre         *string `json:"titre" validate:"omitempty,min=1,max=200"`
	Enonce        *string `json:"enonce" validate:"omitempty,min=1"`
	ClassesCibles *string `json:"classes_cibles" validate:"omitempty,min=1,max=500"`
}

type SoumettreReponseRequest struct {
	EleveID    uint   `json:"eleve_id" validate:"required,gt=0"`
	ExerciceID uint   `json:"exercice_id" validate:"required,gt=0"`
	Reponse    string `json:"reponse" validate:"required,min=1"`
}

type CorrigerReponseRequest struct {
	Note     *float64 `json:"note" validate:"omitempty,gte=0,lte=20"`
	Corrigee *bool    `json:"corrigee"`
}

// ============================
// Converter
// ============================

func (r CreateExerciceRequest) ToModel() model.ExerciceModel {
	return model.ExerciceModel{
		Titre:  strings.TrimSpace(r.Titre),
		Enonce: strings.TrimSpace(r.Enonce),
	}
}

func ToExerciceDTO(m model.ExerciceModel) ExerciceDTO {
	return ExerciceDTO{
		ID:            m.ID,
		Titre:         m.Titre,
		Enonce:        m.Enonce,
		ClassesCibles: m.ClassesCibles,
		DateCreation:  m.DateCreation,
	}
}

func ToExerciceDTOs(ms []model.ExerciceModel) []ExerciceDTO {
	out := make([]ExerciceDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToExerciceDTO(m))
	}
	return out
}

func ToReponseDTO(m model.ReponseExerciceModel) ReponseDTO {
	return ReponseDTO{
		ID:             m.ID,
		ExerciceID:     m.ExerciceID,
		Reponse:        m.Reponse,
		Corrigee:       m.Corrigee,
		Note:           m.Note,
		DateSoumission: m.DateSoumission,
	}
}
