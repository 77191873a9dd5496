package controller

import (
	"strings"

	"eduinfo_backend/internals/constants"
	activiteModel "eduinfo_backend/internals/features/activites/model"
	"eduinfo_backend/internals/features/eleves/dto"
	"eduinfo_backend/internals/features/eleves/model"
	exerciceModel "eduinfo_backend/internals/features/exercices/model"
	messageModel "eduinfo_backend/internals/features/messages/model"
	noteModel "eduinfo_backend/internals/features/notes/model"
	notificationModel "eduinfo_backend/internals/features/notifications/model"
	helper "eduinfo_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateEleve = validator.New()

type EleveController struct {
	DB *gorm.DB
}

func NewEleveController(db *gorm.DB) *EleveController {
	return &EleveController{DB: db}
}

// =======================
// ➕ Créer un élève
// POST /eleves/
// =======================
func (ctrl *EleveController) CreateEleve(c *fiber.Ctx) error {
	var body dto.CreateEleveRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateEleve.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !constants.IsValidClasse(body.Classe) {
		return helper.JsonValidationError(c, map[string][]string{
			"classe": {"code de classe inconnu"},
		})
	}

	eleve := body.ToModel()

	// Unicité (nom, prenom, classe), insensible à la casse.
	var count int64
	if err := ctrl.DB.Model(&model.EleveModel{}).
		Where("lower(nom) = ? AND lower(prenom) = ? AND classe = ?",
			strings.ToLower(eleve.Nom), strings.ToLower(eleve.Prenom), eleve.Classe).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification d'unicité")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cet élève existe déjà dans cette classe")
	}

	if err := ctrl.DB.Create(&eleve).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la création de l'élève")
	}

	return helper.JsonCreated(c, "Élève créé", dto.ToEleveDTO(eleve))
}

// =======================
// 📄 Lister les élèves
// GET /eleves/?classe=&search=&page=&per_page=
// =======================
func (ctrl *EleveController) GetAllEleves(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.EleveModel{})
	if classe := strings.ToLower(strings.TrimSpace(c.Query("classe"))); classe != "" {
		q = q.Where("classe = ?", classe)
	}
	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("lower(nom) LIKE ? OR lower(prenom) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des élèves")
	}

	var eleves []model.EleveModel
	if err := q.
		Order("classe ASC, nom ASC, prenom ASC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&eleves).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des élèves")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Liste des élèves", dto.ToEleveDTOs(eleves), &pagination)
}

// =======================
// 🔍 Détail d'un élève
// GET /eleves/:id
// =======================
func (ctrl *EleveController) GetEleveByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var eleve model.EleveModel
	if err := ctrl.DB.First(&eleve, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	return helper.JsonOK(c, "Détail de l'élève", dto.ToEleveDTO(eleve))
}

// =======================
// ✏️ Modifier un élève
// PUT /eleves/:id
// =======================
func (ctrl *EleveController) UpdateEleve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.UpdateEleveRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateEleve.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if body.Classe != nil && !constants.IsValidClasse(*body.Classe) {
		return helper.JsonValidationError(c, map[string][]string{
			"classe": {"code de classe inconnu"},
		})
	}

	var eleve model.EleveModel
	if err := ctrl.DB.First(&eleve, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	body.ApplyToModel(&eleve)

	var count int64
	if err := ctrl.DB.Model(&model.EleveModel{}).
		Where("lower(nom) = ? AND lower(prenom) = ? AND classe = ? AND id <> ?",
			strings.ToLower(eleve.Nom), strings.ToLower(eleve.Prenom), eleve.Classe, eleve.ID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification d'unicité")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Un élève identique existe déjà dans cette classe")
	}

	if err := ctrl.DB.Save(&eleve).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la mise à jour de l'élève")
	}

	return helper.JsonUpdated(c, "Élève mis à jour", dto.ToEleveDTO(eleve))
}

// =======================
// 🗑️ Supprimer un élève
// DELETE /eleves/:id
// =======================
// Suppression explicite des dépendances dans la même transaction : le
// comportement ne repose pas sur les cascades du moteur SQL.
func (ctrl *EleveController) DeleteEleve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var eleve model.EleveModel
	if err := ctrl.DB.First(&eleve, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("eleve_id = ?", eleve.ID).Delete(&activiteModel.CompletionActiviteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("eleve_id = ?", eleve.ID).Delete(&exerciceModel.ReponseExerciceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("eleve_id = ?", eleve.ID).Delete(&noteModel.NoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("eleve_id = ?", eleve.ID).Delete(&messageModel.MessageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("destinataire_id = ?", eleve.ID).Delete(&notificationModel.NotificationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&eleve).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression de l'élève")
	}

	return helper.JsonDeleted(c, "Élève supprimé", fiber.Map{"id": eleve.ID})
}
