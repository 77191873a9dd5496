package dto

import (
	"strings"
	"time"

	"eduinfo_backend/internals/features/messages/model"
)

// ============================
// Response DTO
// ============================

type MessageDTO struct {
	ID         uint      `json:"id"`
	EleveID    uint      `json:"eleve"`
	Contenu    string    `json:"contenu"`
	Expediteur string    `json:"expediteur"`
	Lu         bool      `json:"lu"`
	DateEnvoi  time.Time `json:"date_envoi"`
}

// Une ligne de la boîte de réception enseignant : le dernier message d'un
// élève, tronqué, plus le nombre de messages non lus.
type ConversationDTO struct {
	EleveID        uint      `json:"eleve_id"`
	Nom            string    `json:"nom"`
	Prenom         string    `json:"prenom"`
	Classe         string    `json:"classe"`
	DernierMessage string    `json:"dernier_message"`
	Expediteur     string    `json:"expediteur"`
	DateEnvoi      time.Time `json:"date_envoi"`
	NonLus         int64     `json:"non_lus"`
}

// ============================
// Request DTO
// ============================

type EnvoyerMessageRequest struct {
	EleveID    uint   `json:"eleve" validate:"required,gt=0"`
	Contenu    string `json:"contenu" validate:"required,min=1"`
	Expediteur string `json:"expediteur" validate:"required,oneof=eleve enseignant"`
}

// ============================
// Converter
// ============================

func (r EnvoyerMessageRequest) ToModel() model.MessageModel {
	return model.MessageModel{
		EleveID:    r.EleveID,
		Contenu:    strings.TrimSpace(r.Contenu),
		Expediteur: r.Expediteur,
	}
}

func ToMessageDTO(m model.MessageModel) MessageDTO {
	return MessageDTO{
		ID:         m.ID,
		EleveID:    m.EleveID,
		Contenu:    m.Contenu,
		Expediteur: m.Expediteur,
		Lu:         m.Lu,
		DateEnvoi:  m.DateEnvoi,
	}
}

func ToMessageDTOs(ms []model.MessageModel) []MessageDTO {
	out := make([]MessageDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMessageDTO(m))
	}
	return out
}
