package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

type CertificateController struct {
	db *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{db: db}
}

func certificateJSON(cert *models.Certificate) gin.H {
	return gin.H{
		"id":              cert.ID,
		"event_id":        cert.EventID,
		"event_title":     cert.Event.Title,
		"event_category":  cert.Event.Category,
		"issue_date":      cert.IssueDate,
		"certificate_url": cert.CertificateURL,
		"template_data":   cert.TemplateData,
	}
}

func (cc *CertificateController) GetCertificates(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var certificates []models.Certificate
	if err := cc.db.Preload("Event").Where("user_id = ?", user.ID).Find(&certificates).Error; err != nil {
		zap.L().Error("failed to fetch certificates", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	certificatesData := make([]gin.H, 0, len(certificates))
	for i := range certificates {
		certificatesData = append(certificatesData, certificateJSON(&certificates[i]))
	}

	c.JSON(http.StatusOK, gin.H{"certificates": certificatesData})
}

func (cc *CertificateController) GetCertificate(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var certificate models.Certificate
	if err := cc.db.Preload("Event").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&certificate).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Certificate not found!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificate": certificateJSON(&certificate)})
}

func (cc *CertificateController) GenerateCertificate(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := cc.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	// Issuance is gated on an attended registration.
	var attended int64
	cc.db.Model(&models.EventRegistration{}).
		Where("user_id = ? AND event_id = ? AND attended = ?", user.ID, event.ID, true).
		Count(&attended)
	if attended == 0 {
		utils.SendError(c, http.StatusBadRequest, "You must attend the event to receive a certificate!")
		return
	}

	var existing int64
	cc.db.Model(&models.Certificate{}).
		Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		Count(&existing)
	if existing > 0 {
		utils.SendError(c, http.StatusBadRequest, "Certificate already generated!")
		return
	}

	now := time.Now().UTC()
	certificateID := fmt.Sprintf("CERT-%d-%d-%d", event.ID, user.ID, now.Unix())

	certificate := models.Certificate{
		UserID:         user.ID,
		EventID:        event.ID,
		CertificateURL: fmt.Sprintf("/static/certificates/%s.pdf", certificateID),
		TemplateData: models.JSONMap{
			"participant_name":  user.Username,
			"event_name":        event.Title,
			"completion_date":   now.Format("January 2, 2006"),
			"certificate_id":    certificateID,
			"verification_code": uuid.New().String(),
		},
	}

	if err := cc.db.Create(&certificate).Error; err != nil {
		zap.L().Error("failed to create certificate", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	zap.S().Infof("Certificate issued for user %s, event %s", user.Username, event.Title)

	c.JSON(http.StatusOK, gin.H{
		"message": "Certificate generated successfully!",
		"certificate": gin.H{
			"id":              certificate.ID,
			"event_title":     event.Title,
			"issue_date":      certificate.IssueDate,
			"certificate_url": certificate.CertificateURL,
		},
	})
}
