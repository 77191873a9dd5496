package constants

import "fmt"

// Rôles portés par le claim JWT "role".
const (
	RoleEleve      = "eleve"
	RoleEnseignant = "enseignant"
)

// Message d'erreur des routes de gestion.
const ErrOnlyTeacherCanAccess = "Seul l'enseignant peut accéder à la fonctionnalité %s."

func RoleErrorEnseignant(feature string) string {
	return fmt.Sprintf(ErrOnlyTeacherCanAccess, feature)
}
