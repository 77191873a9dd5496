// file: internals/helpers/auth/token.go
package helperAuth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Clés Locals hydratées par le middleware AuthJWT.
const (
	LocRole    = "role"
	LocEleveID = "eleve_id"
)

const tokenTTL = 12 * time.Hour

// CreateEleveToken signe un token de session élève (HS256).
func CreateEleveToken(secret string, eleveID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role":     "eleve",
		"eleve_id": float64(eleveID),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// CreateEnseignantToken signe un token de session enseignant.
func CreateEnseignantToken(secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": "enseignant",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return v
	}
	return ""
}

// GetEleveID retourne l'id élève porté par le token (0 si absent).
func GetEleveID(c *fiber.Ctx) uint {
	switch v := c.Locals(LocEleveID).(type) {
	case uint:
		return v
	case float64:
		return uint(v)
	}
	return 0
}

// CanActForEleve : l'enseignant voit tout, un élève n'accède qu'à ses
// propres ressources.
func CanActForEleve(c *fiber.Ctx, eleveID uint) bool {
	if GetRole(c) == "enseignant" {
		return true
	}
	return eleveID != 0 && GetEleveID(c) == eleveID
}
