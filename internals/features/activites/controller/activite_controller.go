package controller

import (
	"strings"
	"time"

	"eduinfo_backend/internals/configs"
	"eduinfo_backend/internals/features/activites/dto"
	"eduinfo_backend/internals/features/activites/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateActivite = validator.New()

type ActiviteController struct {
	DB *gorm.DB
}

func NewActiviteController(db *gorm.DB) *ActiviteController {
	return &ActiviteController{DB: db}
}

// =======================
// ➕ Publier une activité
// POST /activites/ (multipart: titre, description, classes_cibles, fichier_joint?)
// =======================
func (ctrl *ActiviteController) CreateActivite(c *fiber.Ctx) error {
	titre := strings.TrimSpace(c.FormValue("titre"))
	description := strings.TrimSpace(c.FormValue("description"))

	fieldErrors := map[string][]string{}
	if titre == "" {
		fieldErrors["titre"] = append(fieldErrors["titre"], "champ obligatoire")
	}
	if len(titre) > 200 {
		fieldErrors["titre"] = append(fieldErrors["titre"], "trop long (max 200)")
	}
	if description == "" {
		fieldErrors["description"] = append(fieldErrors["description"], "champ obligatoire")
	}
	if len(fieldErrors) > 0 {
		return helper.JsonValidationError(c, fieldErrors)
	}

	cibles := service.NormalizeCibles(c.FormValue("classes_cibles", service.CiblesAll))
	if cibles == "" {
		cibles = service.CiblesAll
	}

	activite := model.ActiviteModel{
		Titre:         titre,
		Description:   description,
		ClassesCibles: cibles,
	}

	// Pièce jointe facultative.
	var storedRel string
	if fh, err := c.FormFile("fichier_joint"); err == nil && fh != nil {
		rel, _, err := helper.SaveUploadedFile(configs.UploadDir, "activites", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement de la pièce jointe")
		}
		storedRel = rel
		activite.FichierJoint = &rel
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activite).Error; err != nil {
			return err
		}
		_, err := service.FanOut(tx, activite.ClassesCibles, service.NouvelleActivite{Titre: activite.Titre})
		return err
	})
	if err != nil {
		if storedRel != "" {
			helper.RemoveStoredFile(configs.UploadDir, storedRel)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la publication de l'activité")
	}

	return helper.JsonCreated(c, "Activité publiée", dto.ToActiviteDTO(activite))
}

// =======================
// 📄 Lister toutes les activités (enseignant)
// GET /activites/
// =======================
func (ctrl *ActiviteController) GetAllActivites(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.ActiviteModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des activités")
	}

	var activites []model.ActiviteModel
	if err := ctrl.DB.
		Order("date_creation DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&activites).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des activités")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Liste des activités", dto.ToActiviteDTOs(activites), &pagination)
}

// =======================
// 🔍 Détail d'une activité
// GET /activites/:id
// =======================
func (ctrl *ActiviteController) GetActiviteByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	return helper.JsonOK(c, "Détail de l'activité", dto.ToActiviteDTO(activite))
}

// =======================
// ✏️ Modifier une activité
// PUT /activites/:id (sans re-notification)
// =======================
func (ctrl *ActiviteController) UpdateActivite(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.UpdateActiviteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateActivite.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	if body.Titre != nil {
		activite.Titre = strings.TrimSpace(*body.Titre)
	}
	if body.Description != nil {
		activite.Description = strings.TrimSpace(*body.Description)
	}
	if body.ClassesCibles != nil {
		cibles := service.NormalizeCibles(*body.ClassesCibles)
		if cibles == "" {
			return helper.JsonValidationError(c, map[string][]string{
				"classes_cibles": {"ciblage vide"},
			})
		}
		activite.ClassesCibles = cibles
	}

	if err := ctrl.DB.Save(&activite).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la mise à jour de l'activité")
	}

	return helper.JsonUpdated(c, "Activité mise à jour", dto.ToActiviteDTO(activite))
}

// =======================
// 🗑️ Supprimer une activité
// DELETE /activites/:id
// =======================
func (ctrl *ActiviteController) DeleteActivite(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activite_id = ?", activite.ID).Delete(&model.CompletionActiviteModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&activite).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression de l'activité")
	}

	if activite.FichierJoint != nil {
		helper.RemoveStoredFile(configs.UploadDir, *activite.FichierJoint)
	}

	return helper.JsonDeleted(c, "Activité supprimée", fiber.Map{"id": activite.ID})
}

// =======================
// 📊 Progression d'une activité
// GET /activites/:id/progress
// =======================
// Une ligne par élève des classes ciblées, complétée ou non.
func (ctrl *ActiviteController) GetProgression(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	eleves, err := service.ResolveCibles(ctrl.DB, activite.ClassesCibles)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la résolution des classes ciblées")
	}

	var completions []model.CompletionActiviteModel
	if err := ctrl.DB.
		Where("activite_id = ? AND completee = ?", activite.ID, true).
		Find(&completions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des complétions")
	}
	doneAt := make(map[uint]time.Time, len(completions))
	for _, comp := range completions {
		doneAt[comp.EleveID] = comp.DateCompletion
	}

	rows := make([]dto.ProgressionEleveDTO, 0, len(eleves))
	totalComplete := 0
	for _, e := range eleves {
		row := dto.ProgressionEleveDTO{
			EleveID: e.ID,
			Nom:     e.Nom,
			Prenom:  e.Prenom,
			Classe:  e.Classe,
		}
		if at, ok := doneAt[e.ID]; ok {
			at := at
			row.Completee = true
			row.DateCompletion = &at
			totalComplete++
		}
		rows = append(rows, row)
	}

	return helper.JsonOK(c, "Progression de l'activité", dto.ProgressionDTO{
		Activite:      dto.ToActiviteDTO(activite),
		TotalCibles:   len(rows),
		TotalComplete: totalComplete,
		Eleves:        rows,
	})
}

// =======================
// 🔔 Rappel d'activité
// POST /activites/:id/rappel
// =======================
// Notifie les élèves ciblés qui n'ont pas encore complété l'activité.
func (ctrl *ActiviteController) EnvoyerRappel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	eleves, err := service.ResolveCibles(ctrl.DB, activite.ClassesCibles)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la résolution des classes ciblées")
	}

	var doneIDs []uint
	if err := ctrl.DB.Model(&model.CompletionActiviteModel{}).
		Where("activite_id = ? AND completee = ?", activite.ID, true).
		Pluck("eleve_id", &doneIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des complétions")
	}
	done := make(map[uint]struct{}, len(doneIDs))
	for _, eid := range doneIDs {
		done[eid] = struct{}{}
	}

	notified := 0
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		kind := service.RappelActivite{Titre: activite.Titre}
		for _, e := range eleves {
			if _, ok := done[e.ID]; ok {
				continue
			}
			if err := service.NotifyEleve(tx, e.ID, kind); err != nil {
				return err
			}
			notified++
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'envoi du rappel")
	}

	return helper.JsonOK(c, "Rappel envoyé", fiber.Map{
		"activite_id":     activite.ID,
		"eleves_notifies": notified,
	})
}
