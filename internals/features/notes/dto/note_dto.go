package dto

import (
	"strings"
	"time"

	"eduinfo_backend/internals/features/notes/model"
)

// ============================
// Response DTO
// ============================

type NoteDTO struct {
	ID              uint      `json:"id"`
	EleveID         uint      `json:"eleve"`
	Note            float64   `json:"note"`
	Commentaire     string    `json:"commentaire"`
	DateAttribution time.Time `json:"date_attribution"`
}

// Vue enseignant : la note plus l'identité de l'élève.
type NoteAvecEleveDTO struct {
	NoteDTO
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Classe string `json:"classe"`
}

// ============================
// Request DTO
// ============================

type CreateNoteRequest struct {
	EleveID     uint    `json:"eleve" validate:"required,gt=0"`
	Note        float64 `json:"note" validate:"gte=0,lte=20"`
	Commentaire string  `json:"commentaire" validate:"omitempty,max=2000"`
}

type UpdateNoteRequest struct {
	Note        *float64 `json:"note" validate:"omitempty,gte=0,lte=20"`
	Commentaire *string  `json:"commentaire" validate:"omitempty,max=2000"`
}

// ============================
// Converter
// ============================

func (r CreateNoteRequest) ToModel() model.NoteModel {
	return model.NoteModel{
		EleveID:     r.EleveID,
		Note:        r.Note,
		Commentaire: strings.TrimSpace(r.Commentaire),
	}
}

func ToNoteDTO(m model.NoteModel) NoteDTO {
	return NoteDTO{
		ID:              m.ID,
		EleveID:         m.EleveID,
		Note:            m.Note,
		Commentaire:     m.Commentaire,
		DateAttribution: m.DateAttribution,
	}
}

func ToNoteDTOs(ms []model.NoteModel) []NoteDTO {
	out := make([]NoteDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToNoteDTO(m))
	}
	return out
}
