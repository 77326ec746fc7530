package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/cache"
	"github.com/nailroom/salon-scheduler/internal/config"
	dbpkg "github.com/nailroom/salon-scheduler/internal/db"
	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/routes"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// one connection, otherwise every pooled conn gets its own :memory: db
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}

	r := gin.New()
	routes.RegisterRoutes(r, gdb, cfg, zap.NewNop(), cache.NewMemoryVisits(), nil)

	return r, gdb
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	User struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

// register creates a master or customer through the API and returns id+token.
func register(t *testing.T, r *gin.Engine, kind, username string) (uint, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/register/"+kind, "", map[string]any{
		"username": username,
		"password": "password1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s %q: status %d, body %s", kind, username, w.Code, w.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.User.ID, resp.Token
}

// seedAdmin inserts an admin row directly; there is no registration endpoint
// for the admin role.
func seedAdmin(t *testing.T, r *gin.Engine, gdb *gorm.DB, username string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": "password1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login admin: status %d, body %s", w.Code, w.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}
