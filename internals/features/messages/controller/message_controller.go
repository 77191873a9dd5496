package controller

import (
	"sort"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/messages/dto"
	"eduinfo_backend/internals/features/messages/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateMessage = validator.New()

type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

// Troncature des aperçus de conversation.
const apercuMax = 50

func tronquerContenu(contenu string) string {
	runes := []rune(contenu)
	if len(runes) <= apercuMax {
		return contenu
	}
	return string(runes[:apercuMax]) + "..."
}

// =======================
// 📤 Envoyer un message
// POST /envoyer-message/
// =======================
// Utilisé dans les deux sens. Quand l'enseignant écrit, l'élève est
// notifié dans la même transaction.
func (ctrl *MessageController) EnvoyerMessage(c *fiber.Ctx) error {
	var body dto.EnvoyerMessageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateMessage.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// Un élève n'écrit que depuis son propre fil, et en son nom.
	if helperAuth.GetRole(c) == "eleve" {
		if body.EleveID != helperAuth.GetEleveID(c) || body.Expediteur != model.ExpediteurEleve {
			return helper.JsonError(c, fiber.StatusForbidden, "Vous ne pouvez écrire que depuis votre propre fil")
		}
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, body.EleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	message := body.ToModel()
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		if message.Expediteur == model.ExpediteurEnseignant {
			return service.NotifyEleve(tx, message.EleveID, service.NouveauMessage{Contenu: message.Contenu})
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'envoi du message")
	}

	return helper.JsonCreated(c, "Message envoyé", dto.ToMessageDTO(message))
}

// =======================
// 📄 Fil d'un élève (vue élève)
// GET /eleve/:eleve_id/messages/
// =======================
// Chronologique, les deux sens confondus. Ne touche pas au statut lu.
func (ctrl *MessageController) GetMessagesForEleve(c *fiber.Ctx) error {
	eleveID, err := c.ParamsInt("eleve_id")
	if err != nil || eleveID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "eleve_id invalide")
	}
	if !helperAuth.CanActForEleve(c, uint(eleveID)) {
		return helper.JsonError(c, fiber.StatusForbidden, "Accès réservé à l'élève concerné")
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, eleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	var messages []model.MessageModel
	if err := ctrl.DB.
		Where("eleve_id = ?", eleve.ID).
		Order("date_envoi ASC").
		Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des messages")
	}

	return helper.JsonList(c, "Fil de discussion", dto.ToMessageDTOs(messages), nil)
}

// =======================
// 📄 Fil d'un élève (vue enseignant)
// GET /teacher/messages/:eleve_id/
// =======================
// Consulter le fil marque lus les messages envoyés par l'élève.
func (ctrl *MessageController) GetMessagesForEnseignant(c *fiber.Ctx) error {
	eleveID, err := c.ParamsInt("eleve_id")
	if err != nil || eleveID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "eleve_id invalide")
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, eleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	if err := ctrl.DB.Model(&model.MessageModel{}).
		Where("eleve_id = ? AND expediteur = ? AND lu = ?", eleve.ID, model.ExpediteurEleve, false).
		Update("lu", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du marquage des messages")
	}

	var messages []model.MessageModel
	if err := ctrl.DB.
		Where("eleve_id = ?", eleve.ID).
		Order("date_envoi ASC").
		Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des messages")
	}

	return helper.JsonList(c, "Fil de discussion", dto.ToMessageDTOs(messages), nil)
}

// =======================
// 📥 Boîte de réception
// GET /teacher/conversations/
// =======================
// Une ligne par élève ayant au moins un message : dernier message tronqué,
// compteur de non-lus, triée du fil le plus récent au plus ancien.
// Recalculée à chaque requête.
func (ctrl *MessageController) GetConversations(c *fiber.Ctx) error {
	var eleveIDs []uint
	if err := ctrl.DB.Model(&model.MessageModel{}).
		Distinct("eleve_id").
		Pluck("eleve_id", &eleveIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des conversations")
	}
	if len(eleveIDs) == 0 {
		return helper.JsonList(c, "Boîte de réception", []dto.ConversationDTO{}, nil)
	}

	var eleves []eleveModel.EleveModel
	if err := ctrl.DB.Where("id IN ?", eleveIDs).Find(&eleves).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des élèves")
	}
	byID := make(map[uint]eleveModel.EleveModel, len(eleves))
	for _, e := range eleves {
		byID[e.ID] = e
	}

	out := make([]dto.ConversationDTO, 0, len(eleveIDs))
	for _, eid := range eleveIDs {
		var dernier model.MessageModel
		if err := ctrl.DB.
			Where("eleve_id = ?", eid).
			Order("date_envoi DESC, id DESC").
			First(&dernier).Error; err != nil {
			continue
		}

		var nonLus int64
		if err := ctrl.DB.Model(&model.MessageModel{}).
			Where("eleve_id = ? AND expediteur = ? AND lu = ?", eid, model.ExpediteurEleve, false).
			Count(&nonLus).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des non-lus")
		}

		row := dto.ConversationDTO{
			EleveID:        eid,
			DernierMessage: tronquerContenu(dernier.Contenu),
			Expediteur:     dernier.Expediteur,
			DateEnvoi:      dernier.DateEnvoi,
			NonLus:         nonLus,
		}
		if e, ok := byID[eid]; ok {
			row.Nom = e.Nom
			row.Prenom = e.Prenom
			row.Classe = e.Classe
		}
		out = append(out, row)
	}

	// Fil le plus récent en tête.
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateEnvoi.After(out[j].DateEnvoi)
	})

	return helper.JsonList(c, "Boîte de réception", out, nil)
}

// =======================
// 🗂️ Administration des messages
// GET /messages-admin/ et DELETE /messages-admin/:id
// =======================
func (ctrl *MessageController) GetAllMessages(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.MessageModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des messages")
	}

	var messages []model.MessageModel
	if err := ctrl.DB.
		Order("date_envoi DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des messages")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Tous les messages", dto.ToMessageDTOs(messages), &pagination)
}

func (ctrl *MessageController) DeleteMessage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	res := ctrl.DB.Delete(&model.MessageModel{}, id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression du message")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Message introuvable")
	}

	return helper.JsonDeleted(c, "Message supprimé", fiber.Map{"id": id})
}
