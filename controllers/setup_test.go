package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/config"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/database"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/routes"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
)

const testJWTSecret = "test-secret"

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared-cache in-memory database per test, so the
	// gorm connection pool sees a single store.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		// Rate limiting is disabled in tests.
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, services.NewEmailService(cfg))

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}

	return w, resp
}

func registerUser(t *testing.T, r *gin.Engine, username, email string, organizer bool) (string, uint) {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username":     username,
		"email":        email,
		"password":     "password123",
		"department":   "CS",
		"year":         "2",
		"is_organizer": organizer,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token := resp["token"].(string)
	user := resp["user"].(map[string]interface{})

	return token, uint(user["id"].(float64))
}

func makeAdmin(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("is_admin", true).Error)
}

func createEvent(t *testing.T, r *gin.Engine, token string, overrides gin.H) uint {
	t.Helper()

	body := gin.H{
		"title":         "Intro to Distributed Systems",
		"description":   "An evening talk with Q&A",
		"category":      "Technical",
		"department":    "CS",
		"venue":         "Main Auditorium",
		"date_time":     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"end_time":      time.Now().Add(50 * time.Hour).UTC().Format(time.RFC3339),
		"contact_email": "host@college.edu",
	}
	for k, v := range overrides {
		body[k] = v
	}

	w, resp := doJSON(t, r, http.MethodPost, "/events", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	event := resp["event"].(map[string]interface{})
	return uint(event["id"].(float64))
}

func eventPath(id uint, suffix string) string {
	return fmt.Sprintf("/events/%d%s", id, suffix)
}

func adminEventPath(id uint, suffix string) string {
	return fmt.Sprintf("/admin/events/%d%s", id, suffix)
}

func eventByID(t *testing.T, db *gorm.DB, id uint) models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, db.First(&event, id).Error)
	return event
}
