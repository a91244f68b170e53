package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

const tokenLifetime = 7 * 24 * time.Hour

type AuthController struct {
	db            *gorm.DB
	jwtSecret     string
	notifications *services.NotificationService
}

func NewAuthController(db *gorm.DB, jwtSecret string, notifications *services.NotificationService) *AuthController {
	return &AuthController{
		db:            db,
		jwtSecret:     jwtSecret,
		notifications: notifications,
	}
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  string `json:"department"`
	Year        string `json:"year"`
	IsOrganizer bool   `json:"is_organizer"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body!")
		return
	}

	// Report the first missing required field.
	required := []struct {
		name  string
		value string
	}{
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
		{"department", req.Department},
		{"year", req.Year},
	}
	for _, field := range required {
		if field.value == "" {
			utils.SendError(c, http.StatusBadRequest, field.name+" is required!")
			return
		}
	}

	if !utils.IsValidEmail(req.Email) {
		utils.SendError(c, http.StatusBadRequest, "Invalid email address!")
		return
	}

	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email already registered!")
		return
	}
	if err := ac.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Username already taken!")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hash),
		Department:  req.Department,
		Year:        req.Year,
		IsOrganizer: req.IsOrganizer,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := ac.generateToken(user.ID)
	if err != nil {
		zap.L().Error("failed to generate token", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := ac.notifications.Notify(user.ID,
		"Welcome to Event Aggregator!",
		"Thank you for registering. Start exploring events now!",
		nil, models.NotificationTypeSuccess); err != nil {
		zap.L().Warn("failed to create welcome notification", zap.Error(err))
	}

	zap.S().Infof("New user registered: %s", user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully!",
		"token":   token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"department":   user.Department,
			"year":         user.Year,
			"is_organizer": user.IsOrganizer,
		},
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.SendError(c, http.StatusBadRequest, "Email and password are required!")
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid email or password!")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid email or password!")
		return
	}

	token, err := ac.generateToken(user.ID)
	if err != nil {
		zap.L().Error("failed to generate token", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	zap.S().Infof("User logged in: %s", user.Username)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"token":   token,
		"user":    user.Summary(),
	})
}

func (ac *AuthController) generateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
