package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorsToMap aplatit les erreurs du validator en
// {champ: [messages]} pour JsonValidationError.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "champ obligatoire"
		case "min":
			msg = "trop court (min " + fe.Param() + ")"
		case "max":
			msg = "trop long (max " + fe.Param() + ")"
		case "oneof":
			msg = "valeur attendue parmi: " + fe.Param()
		case "gte":
			msg = "doit être ≥ " + fe.Param()
		case "lte":
			msg = "doit être ≤ " + fe.Param()
		default:
			msg = "invalide (" + fe.Tag() + ")"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
