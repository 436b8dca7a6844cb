package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/slugnest-dev/slugnest/db"
	"github.com/slugnest-dev/slugnest/internal/auth"
	"github.com/slugnest-dev/slugnest/internal/models"
	"github.com/slugnest-dev/slugnest/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter wires the full route table against a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret: %v", err)
	}

	// A named shared-cache database so every pooled connection sees the
	// same tables; the name keeps parallel packages apart.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	var err error

	db.DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return router.NewRouter()
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)

		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createTestUser(t *testing.T, username, email, password string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}

	token, err := auth.GenerateAccessToken(user.ID, user.Username)

	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	return user, token
}

func createTestHouse(t *testing.T, address string) models.House {
	t.Helper()

	house := models.House{
		Beds:    3,
		Baths:   3,
		Address: address,
	}

	if err := db.DB.Create(&house).Error; err != nil {
		t.Fatalf("create test house: %v", err)
	}

	return house
}
