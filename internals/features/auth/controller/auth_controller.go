package controller

import (
	"strings"

	"eduinfo_backend/internals/configs"
	"eduinfo_backend/internals/constants"
	"eduinfo_backend/internals/features/auth/dto"
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	helper "eduinfo_backend/internals/helpers"
	helperAuth "eduinfo_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validateAuth = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// =======================
// 🔑 Login élève
// POST /login/eleve/
// =======================
// L'élève s'identifie par (nom, prenom), sans casse ni espaces de bord.
// En cas d'homonymes, la première fiche créée gagne.
func (ctrl *AuthController) LoginEleve(c *fiber.Ctx) error {
	var body dto.LoginEleveRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var eleve eleveModel.EleveModel
	err := ctrl.DB.
		Where("lower(nom) = ? AND lower(prenom) = ?",
			strings.ToLower(strings.TrimSpace(body.Nom)),
			strings.ToLower(strings.TrimSpace(body.Prenom))).
		Order("id ASC").
		First(&eleve).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusBadRequest, "Élève introuvable. Vérifiez votre nom et prénom.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la connexion")
	}

	token, err := helperAuth.CreateEleveToken(configs.JWTSecret, eleve.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de créer la session")
	}

	return helper.JsonOK(c, "Connexion réussie", dto.LoginEleveResponse{
		Token: token,
		Role:  constants.RoleEleve,
		Eleve: dto.ToEleveSessionDTO(eleve),
	})
}

// =======================
// 🔑 Login enseignant
// POST /login/enseignant/
// =======================
// Mot de passe unique, comparé au hash bcrypt chargé depuis l'environnement.
func (ctrl *AuthController) LoginEnseignant(c *fiber.Ctx) error {
	var body dto.LoginEnseignantRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if configs.TeacherPasswordHash == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Connexion enseignant non configurée")
	}
	if bcrypt.CompareHashAndPassword([]byte(configs.TeacherPasswordHash), []byte(body.Password)) != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Mot de passe incorrect")
	}

	token, err := helperAuth.CreateEnseignantToken(configs.JWTSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de créer la session")
	}

	return helper.JsonOK(c, "Connexion réussie", dto.LoginEnseignantResponse{
		Token: token,
		Role:  constants.RoleEnseignant,
	})
}
