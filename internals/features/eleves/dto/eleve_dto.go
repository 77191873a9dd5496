package dto

import (
	"strings"
	"time"

	"eduinfo_backend/internals/features/eleves/model"
)

// ============================
// Response DTO
// ============================

type EleveDTO struct {
	ID           uint      `json:"id"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	Classe       string    `json:"classe"`
	DateCreation time.Time `json:"date_creation"`
}

// ============================
// Request DTO
// ============================

type CreateEleveRequest struct {
	Nom    string `json:"nom" validate:"required,min=1,max=100"`
	Prenom string `json:"prenom" validate:"required,min=1,max=100"`
	Classe string `json:"classe" validate:"required"`
}

type UpdateEleveRequest struct {
	Nom    *string `json:"nom" validate:"omitempty,min=1,max=100"`
	Prenom *string `json:"prenom" validate:"omitempty,min=1,max=100"`
	Classe *string `json:"classe" validate:"omitempty"`
}

// ============================
// Converter
// ============================

func (r CreateEleveRequest) ToModel() model.EleveModel {
	return model.EleveModel{
		Nom:    strings.TrimSpace(r.Nom),
		Prenom: strings.TrimSpace(r.Prenom),
		Classe: strings.ToLower(strings.TrimSpace(r.Classe)),
	}
}

func (r UpdateEleveRequest) ApplyToModel(m *model.EleveModel) {
	if r.Nom != nil {
		m.Nom = strings.TrimSpace(*r.Nom)
	}
	if r.Prenom != nil {
		m.Prenom = strings.TrimSpace(*r.Prenom)
	}
	if r.Classe != nil {
		m.Classe = strings.ToLower(strings.TrimSpace(*r.Classe))
	}
}

func ToEleveDTO(m model.EleveModel) EleveDTO {
	return EleveDTO{
		ID:           m.ID,
		Nom:          m.Nom,
		Prenom:       m.Prenom,
		Classe:       m.Classe,
		DateCreation: m.DateCreation,
	}
}

func ToEleveDTOs(ms []model.EleveModel) []EleveDTO {
	out := make([]EleveDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToEleveDTO(m))
	}
	return out
}
