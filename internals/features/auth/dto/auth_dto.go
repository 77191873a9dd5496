package dto

import (
	"time"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

// ============================
// Request DTO
// ============================

type LoginEleveRequest struct {
	Nom    string `json:"nom" validate:"required,min=1,max=100"`
	Prenom string `json:"prenom" validate:"required,min=1,max=100"`
}

type LoginEnseignantRequest struct {
	Password string `json:"password" validate:"required"`
}

// ============================
// Response DTO
// ============================

type EleveSessionDTO struct {
	ID           uint      `json:"id"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	Classe       string    `json:"classe"`
	DateCreation time.Time `json:"date_creation"`
}

type LoginEleveResponse struct {
	Token string          `json:"token"`
	Role  string          `json:"role"`
	Eleve EleveSessionDTO `json:"eleve"`
}

type LoginEnseignantResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func ToEleveSessionDTO(m eleveModel.EleveModel) EleveSessionDTO {
	return EleveSessionDTO{
		ID:           m.ID,
		Nom:          m.Nom,
		Prenom:       m.Prenom,
		Classe:       m.Classe,
		DateCreation: m.DateCreation,
	}
}
