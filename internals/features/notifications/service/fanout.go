// file: internals/features/notifications/service/fanout.go
package service

import (
	"fmt"

	"gorm.io/gorm"

	notificationModel "eduinfo_backend/internals/features/notifications/model"
)

// Kind : un type de notification sait produire son message, son type
// persisté et son lien relatif. Les messages sont rendus à la création,
// jamais interpolés à la lecture.
type Kind interface {
	Message() string
	Type() string
	Lien() string
}

// Extrait coupe un contenu à n runes pour les messages de notification.
func Extrait(contenu string, n int) string {
	runes := []rune(contenu)
	if len(runes) <= n {
		return contenu
	}
	return string(runes[:n])
}

// NouveauFichier : un fichier vient d'être publié pour la classe.
type NouveauFichier struct{ Titre string }

func (k NouveauFichier) Message() string {
	return fmt.Sprintf("Nouveau fichier '%s' disponible pour votre classe.", k.Titre)
}
func (k NouveauFichier) Type() string { return notificationModel.TypeNewFile }
func (k NouveauFichier) Lien() string { return "/student/dashboard/files" }

// NouvelleActivite : une activité vient d'être publiée.
type NouvelleActivite struct{ Titre string }

func (k NouvelleActivite) Message() string {
	return fmt.Sprintf("Nouvelle activité '%s' assignée.", k.Titre)
}
func (k NouvelleActivite) Type() string { return notificationModel.TypeNewActivity }
func (k NouvelleActivite) Lien() string { return "/student/dashboard/activities" }

// NouvelExercice : un exercice vient d'être publié.
type NouvelExercice struct{ Titre string }

func (k NouvelExercice) Message() string {
	return fmt.Sprintf("Nouvel exercice '%s' disponible.", k.Titre)
}
func (k NouvelExercice) Type() string { return notificationModel.TypeNewExercise }
func (k NouvelExercice) Lien() string { return "/student/dashboard/exercises" }

// NoteExercice : la réponse d'un élève vient d'être notée.
type NoteExercice struct {
	Titre string
	Note  float64
}

func (k NoteExercice) Message() string {
	return fmt.Sprintf("Votre réponse à l'exercice '%s' a été notée : %g/20.", k.Titre, k.Note)
}
func (k NoteExercice) Type() string { return notificationModel.TypeGradeUpdated }
func (k NoteExercice) Lien() string { return "/student/dashboard/exercises" }

// NoteGenerale : une note générale a été attribuée à l'élève.
type NoteGenerale struct {
	Note        float64
	Commentaire string
}

func (k NoteGenerale) Message() string {
	msg := fmt.Sprintf("Une nouvelle note générale a été publiée : %g/20.", k.Note)
	if k.Commentaire != "" {
		msg += fmt.Sprintf(" Commentaire: %s...", Extrait(k.Commentaire, 30))
	}
	return msg
}
func (k NoteGenerale) Type() string { return notificationModel.TypeGradeUpdated }
func (k NoteGenerale) Lien() string { return "/student/dashboard/grades" }

// NouveauMessage : l'enseignant a écrit à l'élève.
type NouveauMessage struct{ Contenu string }

func (k NouveauMessage) Message() string {
	return fmt.Sprintf("Nouveau message de l'enseignant: \"%s...\"", Extrait(k.Contenu, 30))
}
func (k NouveauMessage) Type() string { return notificationModel.TypeNewMessage }
func (k NouveauMessage) Lien() string { return "/student/dashboard/messages" }

// RappelActivite : rappel manuel envoyé par l'enseignant.
type RappelActivite struct{ Titre string }

func (k RappelActivite) Message() string {
	return fmt.Sprintf("Rappel : l'activité '%s' attend toujours votre réponse.", k.Titre)
}
func (k RappelActivite) Type() string { return notificationModel.TypeActivityReminder }
func (k RappelActivite) Lien() string { return "/student/dashboard/activities" }

func build(eleveID uint, kind Kind) notificationModel.NotificationModel {
	lien := kind.Lien()
	return notificationModel.NotificationModel{
		DestinataireID:   eleveID,
		Message:          kind.Message(),
		TypeNotification: kind.Type(),
		LienRelatif:      &lien,
	}
}

// FanOut crée une notification par élève des classes ciblées, dans la
// transaction de l'écriture qui la déclenche. Zéro destinataire n'est
// pas une erreur.
func FanOut(tx *gorm.DB, cibles string, kind Kind) (int, error) {
	eleves, err := ResolveCibles(tx, cibles)
	if err != nil {
		return 0, err
	}
	if len(eleves) == 0 {
		return 0, nil
	}

	rows := make([]notificationModel.NotificationModel, 0, len(eleves))
	for _, e := range eleves {
		rows = append(rows, build(e.ID, kind))
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// NotifyEleve crée une notification pour un seul élève (correction,
// message, note individuelle).
func NotifyEleve(tx *gorm.DB, eleveID uint, kind Kind) error {
	row := build(eleveID, kind)
	return tx.Create(&row).Error
}
