package controller

import (
	"eduinfo_backend/internals/features/activites/dto"
	"eduinfo_backend/internals/features/activites/model"
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// =======================
// 📄 Activités de la classe d'un élève
// GET /eleve/:eleve_id/activites/
// =======================
// Chaque activité porte l'état de complétion de cet élève.
func (ctrl *ActiviteController) GetActivitesForEleve(c *fiber.Ctx) error {
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

	var activites []model.ActiviteModel
	if err := ctrl.DB.
		Scopes(service.ScopeForClasse(eleve.Classe)).
		Order("date_creation DESC").
		Find(&activites).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des activités")
	}

	var doneIDs []uint
	if err := ctrl.DB.Model(&model.CompletionActiviteModel{}).
		Where("eleve_id = ? AND completee = ?", eleve.ID, true).
		Pluck("activite_id", &doneIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des complétions")
	}
	done := make(map[uint]struct{}, len(doneIDs))
	for _, aid := range doneIDs {
		done[aid] = struct{}{}
	}

	out := make([]dto.ActiviteEleveDTO, 0, len(activites))
	for _, a := range activites {
		_, ok := done[a.ID]
		out = append(out, dto.ActiviteEleveDTO{
			ActiviteDTO: dto.ToActiviteDTO(a),
			Completee:   ok,
		})
	}

	return helper.JsonList(c, "Activités de votre classe", out, nil)
}

// =======================
// ✅ Marquer une activité complétée
// POST /completer-activite/
// =======================
// Idempotent : une ligne par (eleve, activite), créée si besoin puis passée
// à completee=true. Re-cliquer ne change rien.
func (ctrl *ActiviteController) CompleterActivite(c *fiber.Ctx) error {
	var body dto.CompleterActiviteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateActivite.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !helperAuth.CanActForEleve(c, body.EleveID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Accès réservé à l'élève concerné")
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, body.EleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	var activite model.ActiviteModel
	if err := ctrl.DB.First(&activite, body.ActiviteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activité introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'activité")
	}

	// Une activité hors de la classe de l'élève n'est pas complétable.
	if !service.CiblesMatchClasse(activite.ClassesCibles, eleve.Classe) {
		return helper.JsonError(c, fiber.StatusForbidden, "Cette activité ne concerne pas votre classe")
	}

	completion := model.CompletionActiviteModel{
		EleveID:    eleve.ID,
		ActiviteID: activite.ID,
		Completee:  true,
	}
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// L'index unique absorbe les doubles clics concurrents.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "eleve_id"}, {Name: "activite_id"}},
			DoNothing: true,
		}).Create(&completion).Error; err != nil {
			return err
		}
		return tx.Model(&model.CompletionActiviteModel{}).
			Where("eleve_id = ? AND activite_id = ?", eleve.ID, activite.ID).
			Update("completee", true).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement de la complétion")
	}

	return helper.JsonOK(c, "Activité marquée comme complétée", fiber.Map{
		"activite_id": activite.ID,
		"eleve_id":    eleve.ID,
		"completee":   true,
	})
}
