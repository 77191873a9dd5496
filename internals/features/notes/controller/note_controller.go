package controller

import (
	"strings"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/notes/dto"
	"eduinfo_backend/internals/features/notes/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateNote = validator.New()

type NoteController struct {
	DB *gorm.DB
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db}
}

// =======================
// ➕ Attribuer une note
// POST /notes/
// =======================
// La notification de l'élève part dans la même transaction que la note.
func (ctrl *NoteController) CreateNote(c *fiber.Ctx) error {
	var body dto.CreateNoteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateNote.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var eleve eleveModel.EleveModel
	if err := ctrl.DB.First(&eleve, body.EleveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de l'élève")
	}

	note := body.ToModel()
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return service.NotifyEleve(tx, note.EleveID, service.NoteGenerale{
			Note:        note.Note,
			Commentaire: note.Commentaire,
		})
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'attribution de la note")
	}

	return helper.JsonCreated(c, "Note attribuée", dto.ToNoteDTO(note))
}

// =======================
// 📄 Lister les notes (enseignant)
// GET /notes/?eleve=&classe=
// =======================
func (ctrl *NoteController) GetAllNotes(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.NoteModel{})
	eleveID := c.QueryInt("eleve", 0)
	if eleveID <= 0 {
		eleveID = c.QueryInt("eleve_id", 0)
	}
	if eleveID > 0 {
		q = q.Where("eleve_id = ?", eleveID)
	}
	if classe := strings.ToLower(strings.TrimSpace(c.Query("classe"))); classe != "" {
		q = q.Joins("JOIN eleves ON eleves.id = notes.eleve_id").
			Where("eleves.classe = ?", classe)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des notes")
	}

	var notes []model.NoteModel
	if err := q.
		Preload("Eleve").
		Order("date_attribution DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&notes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des notes")
	}

	out := make([]dto.NoteAvecEleveDTO, 0, len(notes))
	for _, n := range notes {
		row := dto.NoteAvecEleveDTO{NoteDTO: dto.ToNoteDTO(n)}
		if n.Eleve != nil {
			row.Nom = n.Eleve.Nom
			row.Prenom = n.Eleve.Prenom
			row.Classe = n.Eleve.Classe
		}
		out = append(out, row)
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Liste des notes", out, &pagination)
}

// =======================
// ✏️ Modifier une note
// PUT /notes/:id (sans re-notification)
// =======================
func (ctrl *NoteController) UpdateNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.UpdateNoteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateNote.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var note model.NoteModel
	if err := ctrl.DB.First(&note, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Note introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération de la note")
	}

	if body.Note != nil {
		note.Note = *body.Note
	}
	if body.Commentaire != nil {
		note.Commentaire = *body.Commentaire
	}

	if err := ctrl.DB.Save(&note).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la mise à jour de la note")
	}

	return helper.JsonUpdated(c, "Note mise à jour", dto.ToNoteDTO(note))
}

// =======================
// 🗑️ Supprimer une note
// DELETE /notes/:id
// =======================
func (ctrl *NoteController) DeleteNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	res := ctrl.DB.Delete(&model.NoteModel{}, id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression de la note")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Note introuvable")
	}

	return helper.JsonDeleted(c, "Note supprimée", fiber.Map{"id": id})
}

// =======================
// 📄 Notes d'un élève
// GET /eleve/:eleve_id/notes/
// =======================
// Liste vide, pas d'erreur, quand l'élève n'a encore aucune note.
func (ctrl *NoteController) GetNotesForEleve(c *fiber.Ctx) error {
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

	var notes []model.NoteModel
	if err := ctrl.DB.
		Where("eleve_id = ?", eleve.ID).
		Order("date_attribution DESC").
		Find(&notes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des notes")
	}

	return helper.JsonList(c, "Vos notes", dto.ToNoteDTOs(notes), nil)
}
