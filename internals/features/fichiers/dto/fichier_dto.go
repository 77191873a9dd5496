package dto

import (
	"time"

	"eduinfo_backend/internals/features/fichiers/model"
	helper "eduinfo_backend/internals/helpers"

	"github.com/bytedance/sonic"
)

// ============================
// Response DTO
// ============================

type FichierDTO struct {
	ID            uint               `json:"id"`
	Titre         string             `json:"titre"`
	Fichier       string             `json:"fichier"`
	Metadata      *helper.UploadMeta `json:"metadata,omitempty"`
	ClassesCibles string             `json:"classes_cibles"`
	DateUpload    time.Time          `json:"date_upload"`
}

// ============================
// Request DTO (multipart fields)
// ============================

type UpdateFichierRequest struct {
	Titre         *string `json:"titre" validate:"omitempty,min=1,max=200"`
	ClassesCibles *string `json:"classes_cibles" validate:"omitempty,min=1,max=500"`
}

// ============================
// Converter
// ============================

func ToFichierDTO(m model.FichierModel) FichierDTO {
	out := FichierDTO{
		ID:            m.ID,
		Titre:         m.Titre,
		Fichier:       m.Fichier,
		ClassesCibles: m.ClassesCibles,
		DateUpload:    m.DateUpload,
	}
	if len(m.Metadata) > 0 {
		var meta helper.UploadMeta
		if err := sonic.Unmarshal(m.Metadata, &meta); err == nil {
			out.Metadata = &meta
		}
	}
	return out
}

func ToFichierDTOs(ms []model.FichierModel) []FichierDTO {
	out := make([]FichierDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToFichierDTO(m))
	}
	return out
}
