package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eduinfo_backend/internals/configs"
	activiteModel "eduinfo_backend/internals/features/activites/model"
	eleveModel "eduinfo_backend/internals/features/eleves/model"
	exerciceModel "eduinfo_backend/internals/features/exercices/model"
	fichierModel "eduinfo_backend/internals/features/fichiers/model"
	messageModel "eduinfo_backend/internals/features/messages/model"
	noteModel "eduinfo_backend/internals/features/notes/model"
	notificationModel "eduinfo_backend/internals/features/notifications/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connexion à PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=eduinfo&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Connexion DB impossible: %v", err)
	}
	DB = db
	log.Println("✅ DB connectée.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate crée/complète le schéma. Les index uniques (eleve, activite) et
// (eleve, exercice) vivent au niveau stockage : ce sont eux qui absorbent
// les signaux de complétion concurrents.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&eleveModel.EleveModel{},
		&fichierModel.FichierModel{},
		&activiteModel.ActiviteModel{},
		&activiteModel.CompletionActiviteModel{},
		&exerciceModel.ExerciceModel{},
		&exerciceModel.ReponseExerciceModel{},
		&noteModel.NoteModel{},
		&messageModel.MessageModel{},
		&notificationModel.NotificationModel{},
	)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
