package controller

import (
	"strings"

	"eduinfo_backend/internals/features/exercices/dto"
	"eduinfo_backend/internals/features/exercices/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateExercice = validator.New()

type ExerciceController struct {
	DB *gorm.DB
}

func NewExerciceController(db *gorm.DB) *ExerciceController {
	return &ExerciceController{DB: db}
}

// =======================
// ➕ Publier un exercice
// POST /exercices/
// =======================
func (ctrl *ExerciceController) CreateExercice(c *fiber.Ctx) error {
	var body dto.CreateExerciceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateExercice.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	exercice := body.ToModel()
	cibles := service.NormalizeCibles(body.ClassesCibles)
	if cibles == "" {
		cibles = service.CiblesAll
	}
	exercice.ClassesCibles = cibles

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&exercice).Error; err != nil {
			return err
		}
		_, err := service.FanOut(tx, exercice.ClassesCibles, service.NouvelExercice{Titre: exercice.Titre})
		return err
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la publication de l'exercice")
	}

	return helper.JsonCreated(c, "Exercice publié", dto.ToExerciceDTO(exercice))
}

// =======================
// 📄 Lister tous les exercices (enseignant)
// GET /exercices/
// =======================
func (ctrl *ExerciceController) GetAllExercices(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.ExerciceModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des exercices")
	}

	var exercices []model.ExerciceModel
	if err := ctrl.DB.
		Order("date_creation DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&exercices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des exercices")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Liste des exercices", dto.ToExerciceDTOs(exercices), &pagination)
}

// =======================
// 🔍 Détail d'un exercice
// GET /exercices/:id
// =======================
func (ctrl *ExerciceController) GetExerciceByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var exercice model.ExerciceModel
	if err := ctrl.DB.First(&exercice, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exercice introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'exercice")
	}

	return helper.JsonOK(c, "Détail de l'exercice", dto.ToExerciceDTO(exercice))
}

// =======================
// ✏️ Modifier un exercice
// PUT /exercices/:id (sans re-notification)
// =======================
func (ctrl *ExerciceController) UpdateExercice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.UpdateExerciceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateExercice.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var exercice model.ExerciceModel
	if err := ctrl.DB.First(&exercice, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exercice introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'exercice")
	}

	if body.Titre != nil {
		exercice.Titre = strings.TrimSpace(*body.Titre)
	}
	if body.Enonce != nil {
		exercice.Enonce = strings.TrimSpace(*body.Enonce)
	}
	if body.ClassesCibles != nil {
		cibles := service.NormalizeCibles(*body.ClassesCibles)
		if cibles == "" {
			return helper.JsonValidationError(c, map[string][]string{
				"classes_cibles": {"ciblage vide"},
			})
		}
		exercice.ClassesCibles = cibles
	}

	if err := ctrl.DB.Save(&exercice).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la mise à jour de l'exercice")
	}

	return helper.JsonUpdated(c, "Exercice mis à jour", dto.ToExerciceDTO(exercice))
}

// =======================
// 🗑️ Supprimer un exercice
// DELETE /exercices/:id
// =======================
func (ctrl *ExerciceController) DeleteExercice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var exercice model.ExerciceModel
	if err := ctrl.DB.First(&exercice, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exercice introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'exercice")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercice_id = ?", exercice.ID).Delete(&model.ReponseExerciceModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&exercice).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression de l'exercice")
	}

	return helper.JsonDeleted(c, "Exercice supprimé", fiber.Map{"id": exercice.ID})
}

// =======================
// 📄 Réponses d'un exercice (enseignant)
// GET /exercices/:id/responses/
// =======================
func (ctrl *ExerciceController) GetReponsesByExercice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var exercice model.ExerciceModel
	if err := ctrl.DB.First(&exercice, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exercice introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'exercice")
	}

	var reponses []model.ReponseExerciceModel
	if err := ctrl.DB.
		Preload("Eleve").
		Joins("JOIN eleves ON eleves.id = reponses_exercice.eleve_id").
		Where("reponses_exercice.exercice_id = ?", exercice.ID).
		Order("eleves.classe ASC, eleves.nom ASC, eleves.prenom ASC").
		Find(&reponses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des réponses")
	}

	out := make([]dto.ReponseAvecEleveDTO, 0, len(reponses))
	for _, r := range reponses {
		row := dto.ReponseAvecEleveDTO{
			ReponseDTO: dto.ToReponseDTO(r),
			EleveID:    r.EleveID,
		}
		if r.Eleve != nil {
			row.Nom = r.Eleve.Nom
			row.Prenom = r.Eleve.Prenom
			row.Classe = r.Eleve.Classe
		}
		out = append(out, row)
	}

	return helper.JsonList(c, "Réponses à l'exercice", out, nil)
}

// =======================
// ✏️ Corriger une réponse
// PUT /reponses-exercice/:id
// =======================
// L'élève n'est notifié que lorsque la correction devient effective :
// passage de corrigee false à true avec une note posée. Re-sauvegarder une
// correction déjà faite ne renvoie pas de notification.
func (ctrl *ExerciceController) CorrigerReponse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.CorrigerReponseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateExercice.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var reponse model.ReponseExerciceModel
	if err := ctrl.DB.Preload("Exercice").First(&reponse, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Réponse introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de la réponse")
	}

	wasCorrigee := reponse.Corrigee

	if body.Note != nil {
		reponse.Note = body.Note
	}
	if body.Corrigee != nil {
		reponse.Corrigee = *body.Corrigee
	} else if body.Note != nil {
		// Poser une note vaut correction.
		reponse.Corrigee = true
	}

	notify := !wasCorrigee && reponse.Corrigee && reponse.Note != nil

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reponse).Error; err != nil {
			return err
		}
		if notify {
			titre := ""
			if reponse.Exercice != nil {
				titre = reponse.Exercice.Titre
			}
			return service.NotifyEleve(tx, reponse.EleveID, service.NoteExercice{
				Titre: titre,
				Note:  *reponse.Note,
			})
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement de la correction")
	}

	return helper.JsonUpdated(c, "Correction enregistrée", dto.ToReponseDTO(reponse))
}
