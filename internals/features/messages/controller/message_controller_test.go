package controller

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	"eduinfo_backend/internals/features/messages/model"
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
		&model.MessageModel{},
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

func setupTeacherApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctrl := NewMessageController(db)
	api := app.Group("/api", asRole("enseignant", 0))
	api.Post("/envoyer-message/", ctrl.EnvoyerMessage)
	api.Get("/teacher/messages/:eleve_id/", ctrl.GetMessagesForEnseignant)
	api.Get("/teacher/conversations/", ctrl.GetConversations)
	return app
}

func seedEleve(t *testing.T, db *gorm.DB, nom, prenom, classe string) eleveModel.EleveModel {
	t.Helper()
	e := eleveModel.EleveModel{Nom: nom, Prenom: prenom, Classe: classe}
	assert.NoError(t, db.Create(&e).Error)
	return e
}

func seedMessage(t *testing.T, db *gorm.DB, eleveID uint, contenu, exp string, lu bool, at time.Time) {
	t.Helper()
	m := model.MessageModel{EleveID: eleveID, Contenu: contenu, Expediteur: exp, Lu: lu, DateEnvoi: at}
	assert.NoError(t, db.Create(&m).Error)
}

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]any
	payload, _ := io.ReadAll(resp.Body)
	_ = sonic.Unmarshal(payload, &parsed)
	return resp, parsed
}

func TestEnvoyerMessageEnseignantNotifie(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	app := setupTeacherApp(db)

	raw, _ := sonic.Marshal(fiber.Map{
		"eleve": e.ID, "contenu": "Pense à rendre ton cahier.", "expediteur": "enseignant",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/envoyer-message/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var notif notificationModel.NotificationModel
	assert.NoError(t, db.First(&notif).Error)
	assert.Equal(t, e.ID, notif.DestinataireID)
	assert.Equal(t, notificationModel.TypeNewMessage, notif.TypeNotification)
}

func TestEleveNEcritQuePourLui(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	autre := seedEleve(t, db, "Cherif", "Lina", "1am1")

	app := fiber.New()
	ctrl := NewMessageController(db)
	api := app.Group("/api", asRole("eleve", e.ID))
	api.Post("/envoyer-message/", ctrl.EnvoyerMessage)

	raw, _ := sonic.Marshal(fiber.Map{
		"eleve": autre.ID, "contenu": "coucou", "expediteur": "eleve",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/envoyer-message/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// usurper l'expéditeur enseignant est refusé aussi
	raw, _ = sonic.Marshal(fiber.Map{
		"eleve": e.ID, "contenu": "coucou", "expediteur": "enseignant",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/envoyer-message/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVueEnseignantMarqueLu(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")
	now := time.Now()
	seedMessage(t, db, e.ID, "Bonjour monsieur", model.ExpediteurEleve, false, now.Add(-2*time.Hour))
	seedMessage(t, db, e.ID, "Bonjour", model.ExpediteurEnseignant, false, now.Add(-1*time.Hour))
	app := setupTeacherApp(db)

	resp, body := getJSON(t, app, fmt.Sprintf("/api/teacher/messages/%d/", e.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	rows := body["data"].([]any)
	assert.Len(t, rows, 2)

	// les messages de l'élève sont maintenant lus
	var nonLus int64
	assert.NoError(t, db.Model(&model.MessageModel{}).
		Where("eleve_id = ? AND expediteur = ? AND lu = ?", e.ID, model.ExpediteurEleve, false).
		Count(&nonLus).Error)
	assert.Zero(t, nonLus)
}

func TestConversations(t *testing.T) {
	db := setupDB(t)
	a := seedEleve(t, db, "Benali", "Amine", "1am1")
	b := seedEleve(t, db, "Cherif", "Lina", "2am2")
	seedEleve(t, db, "Daoud", "Yanis", "3am3") // jamais écrit : absent de la boîte

	t1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	long := strings.Repeat("a", 60)
	seedMessage(t, db, a.ID, "Premier message", model.ExpediteurEleve, false, t1)
	seedMessage(t, db, a.ID, long, model.ExpediteurEleve, false, t3)
	seedMessage(t, db, b.ID, "Réponse envoyée", model.ExpediteurEnseignant, false, t2)
	app := setupTeacherApp(db)

	resp, body := getJSON(t, app, "/api/teacher/conversations/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	rows := body["data"].([]any)
	assert.Len(t, rows, 2)

	// triée du fil le plus récent au plus ancien
	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	assert.Equal(t, float64(a.ID), first["eleve_id"])
	assert.Equal(t, float64(b.ID), second["eleve_id"])

	// dernier message tronqué à 50 caractères + "..."
	assert.Equal(t, strings.Repeat("a", 50)+"...", first["dernier_message"])
	assert.Equal(t, float64(2), first["non_lus"])

	// le message enseignant ne compte pas comme non lu
	assert.Equal(t, "Réponse envoyée", second["dernier_message"])
	assert.Equal(t, float64(0), second["non_lus"])
}
