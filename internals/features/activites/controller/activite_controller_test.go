package controller

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eduinfo_backend/internals/features/activites/model"
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	notificationModel "eduinfo_backend/internals/features/notifications/model"
	helperAuth "eduinfo_backend/internals/helpers/auth"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&eleveModel.EleveModel{},
		&model.ActiviteModel{},
		&model.CompletionActiviteModel{},
		&notificationModel.NotificationModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

// asRole simule une session déjà vérifiée par le middleware JWT.
func asRole(role string, eleveID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		if eleveID != 0 {
			c.Locals(helperAuth.LocEleveID, eleveID)
		}
		return c.Next()
	}
}

func setupTeacherApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctrl := NewActiviteController(db)
	api := app.Group("/api", asRole("enseignant", 0))
	api.Post("/activites/", ctrl.CreateActivite)
	api.Get("/activites/:id/progress", ctrl.GetProgression)
	api.Post("/activites/:id/rappel", ctrl.EnvoyerRappel)
	return app
}

func setupEleveApp(db *gorm.DB, eleveID uint) *fiber.App {
	app := fiber.New()
	ctrl := NewActiviteController(db)
	api := app.Group("/api", asRole("eleve", eleveID))
	api.Get("/eleve/:eleve_id/activites/", ctrl.GetActivitesForEleve)
	api.Post("/completer-activite/", ctrl.CompleterActivite)
	return app
}

func seedEleve(t *testing.T, db *gorm.DB, nom, prenom, classe string) eleveModel.EleveModel {
	t.Helper()
	e := eleveModel.EleveModel{Nom: nom, Prenom: prenom, Classe: classe}
	assert.NoError(t, db.Create(&e).Error)
	return e
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := sonic.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]any
	payload, _ := io.ReadAll(resp.Body)
	_ = sonic.Unmarshal(payload, &parsed)
	return resp, parsed
}

func TestCreateActiviteFanOut(t *testing.T) {
	db := setupDB(t)
	a := seedEleve(t, db, "Benali", "Amine", "1am1")
	b := seedEleve(t, db, "Cherif", "Lina", "2am2")
	seedEleve(t, db, "Daoud", "Yanis", "3am3")
	app := setupTeacherApp(db)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	assert.NoError(t, w.WriteField("titre", "Sortie scolaire"))
	assert.NoError(t, w.WriteField("description", "Préparer l'autorisation parentale."))
	assert.NoError(t, w.WriteField("classes_cibles", "1AM1, 2am2"))
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/activites/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var activite model.ActiviteModel
	assert.NoError(t, db.First(&activite).Error)
	assert.Equal(t, "1am1,2am2", activite.ClassesCibles)

	// fan-out : un par élève ciblé, aucun pour la 3am3
	var notifs []notificationModel.NotificationModel
	assert.NoError(t, db.Find(&notifs).Error)
	assert.Len(t, notifs, 2)
	dest := map[uint]bool{}
	for _, n := range notifs {
		dest[n.DestinataireID] = true
		assert.Equal(t, notificationModel.TypeNewActivity, n.TypeNotification)
		assert.Equal(t, "Nouvelle activité 'Sortie scolaire' assignée.", n.Message)
	}
	assert.True(t, dest[a.ID])
	assert.True(t, dest[b.ID])
}

func TestCompleterActiviteIdempotent(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	activite := model.ActiviteModel{Titre: "Lecture", Description: "Chapitre 3", ClassesCibles: "1am1"}
	assert.NoError(t, db.Create(&activite).Error)
	app := setupEleveApp(db, e.ID)

	body := fiber.Map{"eleve_id": e.ID, "activite_id": activite.ID}
	for i := 0; i < 3; i++ {
		resp, _ := postJSON(t, app, "/api/completer-activite/", body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var count int64
	assert.NoError(t, db.Model(&model.CompletionActiviteModel{}).
		Where("eleve_id = ? AND activite_id = ?", e.ID, activite.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var comp model.CompletionActiviteModel
	assert.NoError(t, db.Where("eleve_id = ?", e.ID).First(&comp).Error)
	assert.True(t, comp.Completee)
}

func TestCompleterActiviteHorsClasse(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	activite := model.ActiviteModel{Titre: "Lecture", Description: "Chapitre 3", ClassesCibles: "2am2"}
	assert.NoError(t, db.Create(&activite).Error)
	app := setupEleveApp(db, e.ID)

	resp, _ := postJSON(t, app, "/api/completer-activite/", fiber.Map{
		"eleve_id": e.ID, "activite_id": activite.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompleterActivitePourUnAutreEleve(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	autre := seedEleve(t, db, "Cherif", "Lina", "1am1")
	activite := model.ActiviteModel{Titre: "Lecture", Description: "Chapitre 3", ClassesCibles: "1am1"}
	assert.NoError(t, db.Create(&activite).Error)
	app := setupEleveApp(db, e.ID)

	resp, _ := postJSON(t, app, "/api/completer-activite/", fiber.Map{
		"eleve_id": autre.ID, "activite_id": activite.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetActivitesForEleveCompletionStatus(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	faite := model.ActiviteModel{Titre: "Faite", Description: "x", ClassesCibles: "all"}
	pasFaite := model.ActiviteModel{Titre: "Pas faite", Description: "x", ClassesCibles: "1am1"}
	horsClasse := model.ActiviteModel{Titre: "Ailleurs", Description: "x", ClassesCibles: "2am2"}
	assert.NoError(t, db.Create(&faite).Error)
	assert.NoError(t, db.Create(&pasFaite).Error)
	assert.NoError(t, db.Create(&horsClasse).Error)
	assert.NoError(t, db.Create(&model.CompletionActiviteModel{
		EleveID: e.ID, ActiviteID: faite.ID, Completee: true,
	}).Error)
	app := setupEleveApp(db, e.ID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/eleve/%d/activites/", e.ID), nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	payload, _ := io.ReadAll(resp.Body)
	assert.NoError(t, sonic.Unmarshal(payload, &body))
	rows := body["data"].([]any)
	assert.Len(t, rows, 2)

	byTitre := map[string]bool{}
	for _, r := range rows {
		row := r.(map[string]any)
		byTitre[row["titre"].(string)] = row["completee"].(bool)
	}
	assert.True(t, byTitre["Faite"])
	assert.False(t, byTitre["Pas faite"])
	_, present := byTitre["Ailleurs"]
	assert.False(t, present)
}

func TestRappelNeNotifieQueLesRetardataires(t *testing.T) {
	db := setupDB(t)
	retard := seedEleve(t, db, "Benali", "Amine", "1am1")
	aJour := seedEleve(t, db, "Cherif", "Lina", "1am1")
	activite := model.ActiviteModel{Titre: "Lecture", Description: "Chapitre 3", ClassesCibles: "1am1"}
	assert.NoError(t, db.Create(&activite).Error)
	assert.NoError(t, db.Create(&model.CompletionActiviteModel{
		EleveID: aJour.ID, ActiviteID: activite.ID, Completee: true,
	}).Error)
	app := setupTeacherApp(db)

	resp, body := postJSON(t, app, fmt.Sprintf("/api/activites/%d/rappel", activite.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["eleves_notifies"])

	var notifs []notificationModel.NotificationModel
	assert.NoError(t, db.Find(&notifs).Error)
	assert.Len(t, notifs, 1)
	assert.Equal(t, retard.ID, notifs[0].DestinataireID)
	assert.Equal(t, notificationModel.TypeActivityReminder, notifs[0].TypeNotification)
}

func TestProgression(t *testing.T) {
	db := setupDB(t)
	a := seedEleve(t, db, "Benali", "Amine", "1am1")
	seedEleve(t, db, "Cherif", "Lina", "1am1")
	activite := model.ActiviteModel{Titre: "Lecture", Description: "Chapitre 3", ClassesCibles: "1am1"}
	assert.NoError(t, db.Create(&activite).Error)
	assert.NoError(t, db.Create(&model.CompletionActiviteModel{
		EleveID: a.ID, ActiviteID: activite.ID, Completee: true,
	}).Error)
	app := setupTeacherApp(db)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/activites/%d/progress", activite.ID), nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	payload, _ := io.ReadAll(resp.Body)
	assert.NoError(t, sonic.Unmarshal(payload, &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total_cibles"])
	assert.Equal(t, float64(1), data["total_complete"])
}
