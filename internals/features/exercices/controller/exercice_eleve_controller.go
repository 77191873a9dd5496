package controller

import (
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/exercices/dto"
	"eduinfo_backend/internals/features/exercices/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// =======================
// 📄 Exercices de la classe d'un élève
// GET /eleve/:eleve_id/exercices/
// =======================
// Chaque exercice embarque la réponse de cet élève (nil si aucune).
func (ctrl *ExerciceController) GetExercicesForEleve(c *fiber.Ctx) error {
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

	var exercices []model.ExerciceModel
	if err := ctrl.DB.
		Scopes(service.ScopeForClasse(eleve.Classe)).
		Order("date_creation DESC").
		Find(&exercices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des exercices")
	}

	var reponses []model.ReponseExerciceModel
	if err := ctrl.DB.
		Where("eleve_id = ?", eleve.ID).
		Find(&reponses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des réponses")
	}
	byExercice := make(map[uint]model.ReponseExerciceModel, len(reponses))
	for _, r := range reponses {
		byExercice[r.ExerciceID] = r
	}

	out := make([]dto.ExerciceEleveDTO, 0, len(exercices))
	for _, ex := range exercices {
		row := dto.ExerciceEleveDTO{ExerciceDTO: dto.ToExerciceDTO(ex)}
		if r, ok := byExercice[ex.ID]; ok {
			rd := dto.ToReponseDTO(r)
			row.ReponseEleve = &rd
		}
		out = append(out, row)
	}

	return helper.JsonList(c, "Exercices de votre classe", out, nil)
}

// =======================
// 📤 Soumettre une réponse
// POST /soumettre-reponse/
// =======================
// Une réponse par (eleve, exercice). Une resoumission écrase le texte et
// remet corrigee=false et note=NULL, même si la copie était déjà notée.
func (ctrl *ExerciceController) SoumettreReponse(c *fiber.Ctx) error {
	var body dto.SoumettreReponseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateExercice.Struct(&body); err != nil {
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

	var exercice model.ExerciceModel
	if err := ctrl.DB.First(&exercice, body.ExerciceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exercice introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'exercice")
	}

	if !service.CiblesMatchClasse(exercice.ClassesCibles, eleve.Classe) {
		return helper.JsonError(c, fiber.StatusForbidden, "Cet exercice ne concerne pas votre classe")
	}

	reponse := model.ReponseExerciceModel{
		EleveID:    eleve.ID,
		ExerciceID: exercice.ID,
		Reponse:    body.Reponse,
		Corrigee:   false,
		Note:       nil,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "eleve_id"}, {Name: "exercice_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"reponse":         body.Reponse,
			"corrigee":        false,
			"note":            nil,
			"date_soumission": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&reponse).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement de la réponse")
	}

	// Relit la ligne effective (l'upsert peut avoir mis à jour une ligne existante).
	var saved model.ReponseExerciceModel
	if err := ctrl.DB.
		Where("eleve_id = ? AND exercice_id = ?", eleve.ID, exercice.ID).
		First(&saved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la relecture de la réponse")
	}

	return helper.JsonOK(c, "Réponse enregistrée", dto.ToReponseDTO(saved))
}
