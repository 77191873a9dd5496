package controller

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/exercices/model"
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
		&model.ExerciceModel{},
		&model.ReponseExerciceModel{},
		&notificationModel.NotificationModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func asRole(role string, eleveID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		if eleveID != 0 {
			c.Locals(helperAuth.LocEleveID, eleveID)
		}
		return c.Next()
	}
}

func setupApps(db *gorm.DB, eleveID uint) (eleveApp, teacherApp *fiber.App) {
	ctrl := NewExerciceController(db)

	eleveApp = fiber.New()
	el := eleveApp.Group("/api", asRole("eleve", eleveID))
	el.Get("/eleve/:eleve_id/exercices/", ctrl.GetExercicesForEleve)
	el.Post("/soumettre-reponse/", ctrl.SoumettreReponse)

	teacherApp = fiber.New()
	te := teacherApp.Group("/api", asRole("enseignant", 0))
	te.Post("/exercices/", ctrl.CreateExercice)
	te.Get("/exercices/:id/responses", ctrl.GetReponsesByExercice)
	te.Put("/reponses-exercice/:id", ctrl.CorrigerReponse)
	return
}

func seedEleve(t *testing.T, db *gorm.DB, nom, prenom, classe string) eleveModel.EleveModel {
	t.Helper()
	e := eleveModel.EleveModel{Nom: nom, Prenom: prenom, Classe: classe}
	assert.NoError(t, db.Create(&e).Error)
	return e
}

func seedExercice(t *testing.T, db *gorm.DB, titre, cibles string) model.ExerciceModel {
	t.Helper()
	ex := model.ExerciceModel{Titre: titre, Enonce: "Énoncé.", ClassesCibles: cibles}
	assert.NoError(t, db.Create(&ex).Error)
	return ex
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := sonic.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]any
	payload, _ := io.ReadAll(resp.Body)
	_ = sonic.Unmarshal(payload, &parsed)
	return resp, parsed
}

func TestCreateExerciceFanOut(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	seedEleve(t, db, "Daoud", "Yanis", "3am3")
	_, teacher := setupApps(db, 0)

	resp, _ := doJSON(t, teacher, http.MethodPost, "/api/exercices/", fiber.Map{
		"titre": "Conjugaison", "enonce": "Conjuguer les verbes.", "classes_cibles": "1am1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var notifs []notificationModel.NotificationModel
	assert.NoError(t, db.Find(&notifs).Error)
	assert.Len(t, notifs, 1)
	assert.Equal(t, e.ID, notifs[0].DestinataireID)
	assert.Equal(t, "Nouvel exercice 'Conjugaison' disponible.", notifs[0].Message)
}

func TestResoumissionEcraseLaNote(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	ex := seedExercice(t, db, "Conjugaison", "1am1")
	eleveApp, _ := setupApps(db, e.ID)

	resp, _ := doJSON(t, eleveApp, http.MethodPost, "/api/soumettre-reponse/", fiber.Map{
		"eleve_id": e.ID, "exercice_id": ex.ID, "reponse": "Première version",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// l'enseignant corrige
	note := 12.0
	assert.NoError(t, db.Model(&model.ReponseExerciceModel{}).
		Where("eleve_id = ? AND exercice_id = ?", e.ID, ex.ID).
		Updates(map[string]any{"corrigee": true, "note": note}).Error)

	// resoumission : la note saute, corrigee repasse à false
	resp, body := doJSON(t, eleveApp, http.MethodPost, "/api/soumettre-reponse/", fiber.Map{
		"eleve_id": e.ID, "exercice_id": ex.ID, "reponse": "Deuxième version",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Deuxième version", data["reponse"])
	assert.Equal(t, false, data["corrigee"])
	assert.Nil(t, data["note"])

	var count int64
	assert.NoError(t, db.Model(&model.ReponseExerciceModel{}).
		Where("eleve_id = ? AND exercice_id = ?", e.ID, ex.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCorrectionNotifieUneSeuleFois(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	ex := seedExercice(t, db, "Conjugaison", "1am1")
	reponse := model.ReponseExerciceModel{EleveID: e.ID, ExerciceID: ex.ID, Reponse: "Ma copie"}
	assert.NoError(t, db.Create(&reponse).Error)
	_, teacher := setupApps(db, 0)

	countNotifs := func() int64 {
		var n int64
		assert.NoError(t, db.Model(&notificationModel.NotificationModel{}).Count(&n).Error)
		return n
	}

	// correction effective : note + corrigee → une notification
	resp, _ := doJSON(t, teacher, http.MethodPut,
		fmt.Sprintf("/api/reponses-exercice/%d", reponse.ID), fiber.Map{"note": 15.5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), countNotifs())

	var notif notificationModel.NotificationModel
	assert.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "Votre réponse à l'exercice 'Conjugaison' a été notée : 15.5/20.", notif.Message)
	assert.Equal(t, notificationModel.TypeGradeUpdated, notif.TypeNotification)

	// re-sauvegarde d'une copie déjà corrigée : rien de plus
	resp, _ = doJSON(t, teacher, http.MethodPut,
		fmt.Sprintf("/api/reponses-exercice/%d", reponse.ID), fiber.Map{"note": 16.0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), countNotifs())
}

func TestCorrectionSansNoteNeNotifiePas(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	ex := seedExercice(t, db, "Conjugaison", "1am1")
	reponse := model.ReponseExerciceModel{EleveID: e.ID, ExerciceID: ex.ID, Reponse: "Ma copie"}
	assert.NoError(t, db.Create(&reponse).Error)
	_, teacher := setupApps(db, 0)

	corrigee := true
	resp, _ := doJSON(t, teacher, http.MethodPut,
		fmt.Sprintf("/api/reponses-exercice/%d", reponse.ID), fiber.Map{"corrigee": corrigee})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var n int64
	assert.NoError(t, db.Model(&notificationModel.NotificationModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetExercicesForEleveAvecReponse(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	avec := seedExercice(t, db, "Avec réponse", "1am1")
	seedExercice(t, db, "Sans réponse", "all")
	seedExercice(t, db, "Ailleurs", "2am2")
	assert.NoError(t, db.Create(&model.ReponseExerciceModel{
		EleveID: e.ID, ExerciceID: avec.ID, Reponse: "Ma copie",
	}).Error)
	eleveApp, _ := setupApps(db, e.ID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/eleve/%d/exercices/", e.ID), nil)
	resp, err := eleveApp.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	payload, _ := io.ReadAll(resp.Body)
	assert.NoError(t, sonic.Unmarshal(payload, &body))
	rows := body["data"].([]any)
	assert.Len(t, rows, 2)

	for _, r := range rows {
		row := r.(map[string]any)
		switch row["titre"] {
		case "Avec réponse":
			assert.NotNil(t, row["reponse_eleve"])
		case "Sans réponse":
			assert.Nil(t, row["reponse_eleve"])
		default:
			t.Fatalf("exercice inattendu: %v", row["titre"])
		}
	}
}
