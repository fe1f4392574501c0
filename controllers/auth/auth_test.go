package authController_test

import (
	"bytes"
	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/routers/authRoutes"
	"devcamper/utils"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        4,
		JWTExpireHours:   1,
		CookieExpireDays: 1,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Bootcamp{}, &models.Course{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	authRoutes.SetupAuthRoutes(app)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return resp, parsed
}

func registerUser(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "123456",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterIssuesTokenAndCookie(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "John Doe",
		"email":    "john@gmail.com",
		"password": "123456",
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			cookie = c.Value
		}
	}
	assert.NotEmpty(t, cookie)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Other John",
		"email":    "john@gmail.com",
		"password": "123456",
	})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Duplicate field value entered", body["error"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "John Doe",
		"email":    "john@gmail.com",
		"password": "123",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "password")
}

func TestLoginNeverLeaksAccountExistence(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "John Doe", "john@gmail.com", "")

	wrongResp, wrongBody := doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "john@gmail.com",
		"password": "not-the-password",
	})
	unknownResp, unknownBody := doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "nobody@gmail.com",
		"password": "123456",
	})

	assert.Equal(t, fiber.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, wrongBody["error"], unknownBody["error"])
	assert.Equal(t, "Invalid credentials", wrongBody["error"])
}

func TestLoginWithValidCredentials(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "john@gmail.com",
		"password": "123456",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestGetMeRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "GET", "/api/v1/auth/me", "", nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized to access this route", body["error"])
}

func TestGetMeReturnsCurrentUser(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "GET", "/api/v1/auth/me", token, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "john@gmail.com", data["email"])
	// The password hash must never serialize.
	_, present := data["password"]
	assert.False(t, present)
}

func TestTokenOfDeletedUserIsRejected(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	require.NoError(t, database.Database.Db.Where("email = ?", "john@gmail.com").
		Delete(&models.User{}).Error)

	resp, body := doRequest(t, app, "GET", "/api/v1/auth/me", token, nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized to access this route", body["error"])
}

func TestUpdateDetails(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "PUT", "/api/v1/auth/updatedetails", token, fiber.Map{
		"name": "John Smith",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "John Smith", data["name"])
	assert.Equal(t, "john@gmail.com", data["email"])
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "PUT", "/api/v1/auth/updatepassword", token, fiber.Map{
		"currentPassword": "wrong-password",
		"newPassword":     "newpass123",
	})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Password is incorrect", body["error"])
}

func TestUpdatePasswordThenLoginWithNew(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, _ := doRequest(t, app, "PUT", "/api/v1/auth/updatepassword", token, fiber.Map{
		"currentPassword": "123456",
		"newPassword":     "newpass123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	loginResp, _ := doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "john@gmail.com",
		"password": "newpass123",
	})
	assert.Equal(t, fiber.StatusOK, loginResp.StatusCode)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "POST", "/api/v1/auth/forgotpassword", "", fiber.Map{
		"email": "nobody@gmail.com",
	})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "There is no user with the email nobody@gmail.com", body["error"])
}

func TestForgotAndResetPasswordFlow(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "John Doe", "john@gmail.com", "")

	// No mail key configured, so the token comes back in the response.
	resp, body := doRequest(t, app, "POST", "/api/v1/auth/forgotpassword", "", fiber.Map{
		"email": "john@gmail.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	resetToken, _ := data["resetToken"].(string)
	require.NotEmpty(t, resetToken)

	// Only the hash is persisted.
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "john@gmail.com").First(&user).Error)
	assert.NotEqual(t, resetToken, user.ResetPasswordToken)
	assert.Equal(t, utils.HashToken(resetToken), user.ResetPasswordToken)
	require.NotNil(t, user.ResetPasswordExpire)

	resetResp, resetBody := doRequest(t, app, "PUT", "/api/v1/auth/resetpassword/"+resetToken, "", fiber.Map{
		"password": "brandnew1",
	})
	assert.Equal(t, fiber.StatusOK, resetResp.StatusCode)
	assert.NotEmpty(t, resetBody["token"])

	// The token is single use.
	replayResp, replayBody := doRequest(t, app, "PUT", "/api/v1/auth/resetpassword/"+resetToken, "", fiber.Map{
		"password": "another123",
	})
	assert.Equal(t, fiber.StatusBadRequest, replayResp.StatusCode)
	assert.Equal(t, "Invalid token", replayBody["error"])

	loginResp, _ := doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "john@gmail.com",
		"password": "brandnew1",
	})
	assert.Equal(t, fiber.StatusOK, loginResp.StatusCode)
}

func TestResetPasswordBogusToken(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, "PUT", "/api/v1/auth/resetpassword/deadbeef", "", fiber.Map{
		"password": "brandnew1",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestLogoutClearsCookie(t *testing.T) {
	app := setupTestApp(t)
	token := registerUser(t, app, "John Doe", "john@gmail.com", "")

	resp, body := doRequest(t, app, "GET", "/api/v1/auth/logout", token, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			assert.Equal(t, "none", c.Value)
		}
	}
}
