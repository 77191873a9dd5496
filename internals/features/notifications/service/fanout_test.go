package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
	notificationModel "eduinfo_backend/internals/features/notifications/model"
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
		&notificationModel.NotificationModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedEleve(t *testing.T, db *gorm.DB, nom, prenom, classe string) eleveModel.EleveModel {
	t.Helper()
	e := eleveModel.EleveModel{Nom: nom, Prenom: prenom, Classe: classe}
	assert.NoError(t, db.Create(&e).Error)
	return e
}

func TestNormalizeCibles(t *testing.T) {
	assert.Equal(t, "1am1,2am2", NormalizeCibles(" 1AM1 , 2am2 "))
	assert.Equal(t, "all", NormalizeCibles("1am1, ALL ,3am3"))
	assert.Equal(t, "all", NormalizeCibles("all"))
	assert.Equal(t, "", NormalizeCibles("  ,  ,"))
	assert.Equal(t, "1am1", NormalizeCibles("1am1,"))
}

func TestCiblesMatchClasse(t *testing.T) {
	assert.True(t, CiblesMatchClasse("1am1,2am2", "1am1"))
	assert.True(t, CiblesMatchClasse("1am1,2am2", "2AM2"))
	assert.True(t, CiblesMatchClasse("all", "4am5"))
	assert.True(t, CiblesMatchClasse("3am3,all", "4am5"))
	assert.False(t, CiblesMatchClasse("1am1,2am2", "3am3"))

	// appartenance exacte : pas de match par sous-chaîne
	assert.False(t, CiblesMatchClasse("21am1", "1am1"))
	assert.False(t, CiblesMatchClasse("1am1", "1am"))
}

func TestScopeForClasse(t *testing.T) {
	db := setupDB(t)

	type ressource struct {
		ID            uint   `gorm:"primaryKey"`
		ClassesCibles string `gorm:"column:classes_cibles"`
	}
	assert.NoError(t, db.AutoMigrate(&ressource{}))
	assert.NoError(t, db.Create(&[]ressource{
		{ClassesCibles: "1am1,2am2"},
		{ClassesCibles: "all"},
		{ClassesCibles: "21am1"},
		{ClassesCibles: "3am3"},
	}).Error)

	var got []ressource
	assert.NoError(t, db.Scopes(ScopeForClasse("1am1")).Find(&got).Error)
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.True(t, CiblesMatchClasse(r.ClassesCibles, "1am1"))
	}
}

func TestResolveCibles(t *testing.T) {
	db := setupDB(t)
	a := seedEleve(t, db, "Benali", "Amine", "1am1")
	b := seedEleve(t, db, "Cherif", "Lina", "2am2")
	seedEleve(t, db, "Daoud", "Yanis", "3am3")

	eleves, err := ResolveCibles(db, "1am1,2am2")
	assert.NoError(t, err)
	assert.Len(t, eleves, 2)
	ids := []uint{eleves[0].ID, eleves[1].ID}
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, b.ID)

	eleves, err = ResolveCibles(db, "all")
	assert.NoError(t, err)
	assert.Len(t, eleves, 3)

	eleves, err = ResolveCibles(db, "")
	assert.NoError(t, err)
	assert.Empty(t, eleves)
}

func TestFanOutCreatesOneRowPerEleve(t *testing.T) {
	db := setupDB(t)
	seedEleve(t, db, "Benali", "Amine", "1am1")
	seedEleve(t, db, "Cherif", "Lina", "1am1")
	seedEleve(t, db, "Daoud", "Yanis", "3am3")

	n, err := FanOut(db, "1am1", NouveauFichier{Titre: "Cours 1"})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	var notifs []notificationModel.NotificationModel
	assert.NoError(t, db.Find(&notifs).Error)
	assert.Len(t, notifs, 2)
	for _, notif := range notifs {
		assert.Equal(t, "Nouveau fichier 'Cours 1' disponible pour votre classe.", notif.Message)
		assert.Equal(t, notificationModel.TypeNewFile, notif.TypeNotification)
		assert.False(t, notif.Lu)
		if assert.NotNil(t, notif.LienRelatif) {
			assert.Equal(t, "/student/dashboard/files", *notif.LienRelatif)
		}
	}
}

func TestFanOutNoRecipients(t *testing.T) {
	db := setupDB(t)
	seedEleve(t, db, "Benali", "Amine", "1am1")

	n, err := FanOut(db, "4am4", NouvelleActivite{Titre: "Sortie"})
	assert.NoError(t, err)
	assert.Zero(t, n)

	var count int64
	assert.NoError(t, db.Model(&notificationModel.NotificationModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotifyEleve(t *testing.T) {
	db := setupDB(t)
	e := seedEleve(t, db, "Benali", "Amine", "1am1")

	assert.NoError(t, NotifyEleve(db, e.ID, NoteExercice{Titre: "Verbes", Note: 15.5}))

	var notif notificationModel.NotificationModel
	assert.NoError(t, db.First(&notif).Error)
	assert.Equal(t, e.ID, notif.DestinataireID)
	assert.Equal(t, notificationModel.TypeGradeUpdated, notif.TypeNotification)
	assert.Equal(t, "Votre réponse à l'exercice 'Verbes' a été notée : 15.5/20.", notif.Message)
}

func TestKindMessages(t *testing.T) {
	assert.Equal(t, "Nouvelle activité 'Sortie' assignée.", NouvelleActivite{Titre: "Sortie"}.Message())
	assert.Equal(t, "Nouvel exercice 'Verbes' disponible.", NouvelExercice{Titre: "Verbes"}.Message())
	assert.Equal(t, "Rappel : l'activité 'Sortie' attend toujours votre réponse.", RappelActivite{Titre: "Sortie"}.Message())

	assert.Equal(t, "Une nouvelle note générale a été publiée : 14/20.", NoteGenerale{Note: 14}.Message())
	assert.Equal(t,
		"Une nouvelle note générale a été publiée : 14/20. Commentaire: Bon travail...",
		NoteGenerale{Note: 14, Commentaire: "Bon travail"}.Message())

	long := "Bonjour, merci de vérifier le cahier de texte de la classe"
	assert.Equal(t,
		"Nouveau message de l'enseignant: \"Bonjour, merci de vérifier le ...\"",
		NouveauMessage{Contenu: long}.Message())
}

func TestExtrait(t *testing.T) {
	assert.Equal(t, "court", Extrait("court", 30))
	assert.Equal(t, "éèàç", Extrait("éèàçü", 4)) // coupe en runes, pas en octets
}
