package controller

import (
	"strings"

	"eduinfo_backend/internals/configs"
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/fichiers/dto"
	"eduinfo_backend/internals/features/fichiers/model"
	"eduinfo_backend/internals/features/notifications/service"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validateFichier = validator.New()

type FichierController struct {
	DB *gorm.DB
}

func NewFichierController(db *gorm.DB) *FichierController {
	return &FichierController{DB: db}
}

// =======================
// ➕ Publier un fichier
// POST /fichiers/ (multipart: titre, classes_cibles, fichier)
// =======================
// Création + notifications des classes ciblées dans la même transaction.
func (ctrl *FichierController) CreateFichier(c *fiber.Ctx) error {
	titre := strings.TrimSpace(c.FormValue("titre"))
	if titre == "" {
		return helper.JsonValidationError(c, map[string][]string{
			"titre": {"champ obligatoire"},
		})
	}
	if len(titre) > 200 {
		return helper.JsonValidationError(c, map[string][]string{
			"titre": {"trop long (max 200)"},
		})
	}

	cibles := service.NormalizeCibles(c.FormValue("classes_cibles", service.CiblesAll))
	if cibles == "" {
		cibles = service.CiblesAll
	}

	fh, err := c.FormFile("fichier")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"fichier": {"fichier manquant"},
		})
	}

	rel, meta, err := helper.SaveUploadedFile(configs.UploadDir, "fichiers", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement du fichier")
	}

	metaJSON, err := sonic.Marshal(meta)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la sérialisation des métadonnées")
	}

	fichier := model.FichierModel{
		Titre:         titre,
		Fichier:       rel,
		Metadata:      datatypes.JSON(metaJSON),
		ClassesCibles: cibles,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fichier).Error; err != nil {
			return err
		}
		_, err := service.FanOut(tx, fichier.ClassesCibles, service.NouveauFichier{Titre: fichier.Titre})
		return err
	})
	if err != nil {
		helper.RemoveStoredFile(configs.UploadDir, rel)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la publication du fichier")
	}

	return helper.JsonCreated(c, "Fichier publié", dto.ToFichierDTO(fichier))
}

// =======================
// 📄 Lister tous les fichiers (enseignant)
// GET /fichiers/
// =======================
func (ctrl *FichierController) GetAllFichiers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.FichierModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec du comptage des fichiers")
	}

	var fichiers []model.FichierModel
	if err := ctrl.DB.
		Order("date_upload DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&fichiers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des fichiers")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Liste des fichiers", dto.ToFichierDTOs(fichiers), &pagination)
}

// =======================
// 📄 Fichiers de la classe d'un élève
// GET /eleve/:eleve_id/fichiers/
// =======================
func (ctrl *FichierController) GetFichiersForEleve(c *fiber.Ctx) error {
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

	var fichiers []model.FichierModel
	if err := ctrl.DB.
		Scopes(service.ScopeForClasse(eleve.Classe)).
		Order("date_upload DESC").
		Find(&fichiers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération des fichiers")
	}

	return helper.JsonList(c, "Fichiers de votre classe", dto.ToFichierDTOs(fichiers), nil)
}

// =======================
// 🔍 Détail d'un fichier
// GET /fichiers/:id
// =======================
func (ctrl *FichierController) GetFichierByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var fichier model.FichierModel
	if err := ctrl.DB.First(&fichier, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Fichier introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération du fichier")
	}

	return helper.JsonOK(c, "Détail du fichier", dto.ToFichierDTO(fichier))
}

// =======================
// ✏️ Modifier un fichier
// PUT /fichiers/:id (titre et/ou classes_cibles, sans re-notification)
// =======================
func (ctrl *FichierController) UpdateFichier(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var body dto.UpdateFichierRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateFichier.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var fichier model.FichierModel
	if err := ctrl.DB.First(&fichier, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Fichier introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération du fichier")
	}

	if body.Titre != nil {
		fichier.Titre = strings.TrimSpace(*body.Titre)
	}
	if body.ClassesCibles != nil {
		cibles := service.NormalizeCibles(*body.ClassesCibles)
		if cibles == "" {
			return helper.JsonValidationError(c, map[string][]string{
				"classes_cibles": {"ciblage vide"},
			})
		}
		fichier.ClassesCibles = cibles
	}

	if err := ctrl.DB.Save(&fichier).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la mise à jour du fichier")
	}

	return helper.JsonUpdated(c, "Fichier mis à jour", dto.ToFichierDTO(fichier))
}

// =======================
// 🗑️ Supprimer un fichier
// DELETE /fichiers/:id
// =======================
func (ctrl *FichierController) DeleteFichier(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id invalide")
	}

	var fichier model.FichierModel
	if err := ctrl.DB.First(&fichier, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Fichier introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la récupération du fichier")
	}

	if err := ctrl.DB.Delete(&fichier).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression du fichier")
	}

	// Le fichier stocké part après le commit ; une erreur ici n'annule rien.
	helper.RemoveStoredFile(configs.UploadDir, fichier.Fichier)

	return helper.JsonDeleted(c, "Fichier supprimé", fiber.Map{"id": fichier.ID})
}
