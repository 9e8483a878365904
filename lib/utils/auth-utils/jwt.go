package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"personnel-admin/models"
)

// GetToken токен доступа к api истории
func GetToken(secret string, expire time.Duration, userID, name string, role models.UserRole) (tokenString string, err error) {
	if secret == "" {
		return "", errors.New("не задан секрет для подписи токена")
	}
	if !role.IsValid() {
		return "", errors.Errorf("неизвестная роль: %v", role)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  now.Add(expire).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
