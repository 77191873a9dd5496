// file: internals/features/notifications/service/ciblage.go
package service

import (
	"strings"

	"gorm.io/gorm"

	eleveModel "eduinfo_backend/internals/features/eleves/model"
)

// CiblesAll : valeur canonique d'un ciblage "toutes les classes".
const CiblesAll = "all"

// SplitCibles découpe un ciblage brut en tokens normalisés
// (minuscules, espaces retirés, vides ignorés).
func SplitCibles(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NormalizeCibles ramène un ciblage à sa forme canonique stockée :
// tokens minuscules joints par des virgules, ou "all" dès qu'un token
// vaut "all" (quelle que soit sa position ou sa casse). "" si vide.
func NormalizeCibles(raw string) string {
	tokens := SplitCibles(raw)
	for _, t := range tokens {
		if t == CiblesAll {
			return CiblesAll
		}
	}
	return strings.Join(tokens, ",")
}

// CiblesMatchClasse : test d'appartenance côté lecture. Appartenance exacte
// au jeu de tokens, jamais par sous-chaîne : "21am1" ne matche pas "1am1".
func CiblesMatchClasse(cibles, classe string) bool {
	classe = strings.ToLower(strings.TrimSpace(classe))
	for _, t := range SplitCibles(cibles) {
		if t == CiblesAll || t == classe {
			return true
		}
	}
	return false
}

// ScopeForClasse applique CiblesMatchClasse en SQL sur la colonne
// classes_cibles (forme canonique : voir NormalizeCibles).
func ScopeForClasse(classe string) func(*gorm.DB) *gorm.DB {
	classe = strings.ToLower(strings.TrimSpace(classe))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"lower(classes_cibles) = ? OR (',' || lower(classes_cibles) || ',') LIKE ?",
			CiblesAll, "%,"+classe+",%",
		)
	}
}

// ResolveCibles résout un ciblage en liste d'élèves (résolution à l'écriture,
// pour le fan-out). Ciblage vide → personne.
func ResolveCibles(db *gorm.DB, cibles string) ([]eleveModel.EleveModel, error) {
	tokens := SplitCibles(cibles)
	if len(tokens) == 0 {
		return nil, nil
	}

	var eleves []eleveModel.EleveModel
	q := db.Model(&eleveModel.EleveModel{})
	all := false
	for _, t := range tokens {
		if t == CiblesAll {
			all = true
			break
		}
	}
	if !all {
		q = q.Where("classe IN ?", tokens)
	}
	if err := q.Order("classe ASC, nom ASC, prenom ASC").Find(&eleves).Error; err != nil {
		return nil, err
	}
	return eleves, nil
}
