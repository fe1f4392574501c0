package middleware

import (
	"devcamper/config"
	"devcamper/database"
	"devcamper/models"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a signed, time-limited token embedding the user id
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(config.AppConfig.JWTExpireHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// Protect is a middleware that checks for a valid JWT token in the request
// (Authorization header or token cookie) and resolves it to a user record.
func Protect(c *fiber.Ctx) error {
	var tokenString string

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[len("Bearer "):]
	} else if cookie := c.Cookies("token"); cookie != "" {
		tokenString = cookie
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["id"] == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	id, ok := claims["id"].(float64) // JWT numeric claims decode as float64
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	// The token may outlive the account. A deleted user must not pass.
	var user models.User
	if err := database.Database.Db.First(&user, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	c.Locals("user", &user)
	return c.Next()
}

// CurrentUser returns the authenticated user stored by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// JsonResponse writes the standard success envelope.
func JsonResponse(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ValidationErrorResponse reports field validation failures in the
// standard error envelope.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errors[field])
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   strings.Join(parts, "; "),
	})
}

// ListResponse writes the paginated listing envelope.
func ListResponse(c *fiber.Ctx, count int, pagination interface{}, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}
