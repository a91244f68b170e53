package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
)

// Registers frank for the event and marks the registration attended
// through the admin bulk endpoint.
func attendEvent(t *testing.T, r *gin.Engine, admin, student string, studentID, eventID uint) {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, eventPath(eventID, "/register"), student, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, adminEventPath(eventID, "/attendance"), admin, gin.H{
		"attendance": []gin.H{{"user_id": studentID, "attended": true}},
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateCertificate(t *testing.T) {
	r, db := newTestServer(t)
	organizer, _ := registerUser(t, r, "erin", "erin@college.edu", true)
	student, studentID := registerUser(t, r, "frank", "frank@college.edu", false)
	admin, adminID := registerUser(t, r, "root", "root@college.edu", false)
	makeAdmin(t, db, adminID)

	eventID := createEvent(t, r, organizer, gin.H{"title": "Cloud Workshop"})

	w, resp := doJSON(t, r, http.MethodPost, "/events/9999/certificates", student, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found!", resp["message"])

	// Registered but not yet marked attended.
	w, _ = doJSON(t, r, http.MethodPost, eventPath(eventID, "/register"), student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = doJSON(t, r, http.MethodPost, eventPath(eventID, "/certificates"), student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You must attend the event to receive a certificate!", resp["message"])

	w, _ = doJSON(t, r, http.MethodPut, adminEventPath(eventID, "/attendance"), admin, gin.H{
		"attendance": []gin.H{{"user_id": studentID, "attended": true}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodPost, eventPath(eventID, "/certificates"), student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Certificate generated successfully!", resp["message"])
	certificate := resp["certificate"].(map[string]interface{})
	assert.Equal(t, "Cloud Workshop", certificate["event_title"])
	assert.Contains(t, certificate["certificate_url"], "/static/certificates/CERT-")

	// One certificate per user and event.
	w, resp = doJSON(t, r, http.MethodPost, eventPath(eventID, "/certificates"), student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Certificate already generated!", resp["message"])

	var count int64
	db.Model(&models.Certificate{}).
		Where("user_id = ? AND event_id = ?", studentID, eventID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetCertificates(t *testing.T) {
	r, db := newTestServer(t)
	organizer, _ := registerUser(t, r, "erin", "erin@college.edu", true)
	student, studentID := registerUser(t, r, "frank", "frank@college.edu", false)
	other, _ := registerUser(t, r, "grace", "grace@college.edu", false)
	admin, adminID := registerUser(t, r, "root", "root@college.edu", false)
	makeAdmin(t, db, adminID)

	eventID := createEvent(t, r, organizer, nil)
	attendEvent(t, r, admin, student, studentID, eventID)

	w, resp := doJSON(t, r, http.MethodPost, eventPath(eventID, "/certificates"), student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	certID := uint(resp["certificate"].(map[string]interface{})["id"].(float64))

	w, resp = doJSON(t, r, http.MethodGet, "/certificates", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["certificates"], 1)

	w, resp = doJSON(t, r, http.MethodGet, "/certificates", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["certificates"], 0)

	// Single fetch is owner-scoped.
	path := fmt.Sprintf("/certificates/%d", certID)
	w, resp = doJSON(t, r, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Certificate not found!", resp["message"])

	w, resp = doJSON(t, r, http.MethodGet, path, student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	certificate := resp["certificate"].(map[string]interface{})
	assert.Equal(t, float64(eventID), certificate["event_id"])
}
