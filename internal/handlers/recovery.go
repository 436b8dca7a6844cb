package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slugnest-dev/slugnest/db"
	"github.com/slugnest-dev/slugnest/internal/mailer"
	"github.com/slugnest-dev/slugnest/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mailer delivers recovery emails best-effort. Set by main at startup.
var Mailer *mailer.Dispatcher

const (
	resetTokenTTL = 24 * time.Hour

	// Returned verbatim whether the email matched zero or many accounts,
	// so the endpoint cannot be used to enumerate accounts.
	recoveryMessage = "If an account with that email exists, we've sent recovery instructions."
)

type PasswordRecoveryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmPasswordResetRequest struct {
	UID         uint   `json:"uid" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// RequestPasswordRecovery emails a reset link to every account registered
// under the given address. Lookup and delivery failures are logged and
// swallowed; the response is always the same generic 200.
func RequestPasswordRecovery(ctx *gin.Context) {
	var req PasswordRecoveryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var users []models.User

	if err := db.DB.Where("LOWER(email) = ?", email).Find(&users).Error; err != nil {
		log.Printf("Database error during password recovery lookup: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"detail": recoveryMessage})
		return
	}

	for _, user := range users {
		token, err := issueResetToken(user)

		if err != nil {
			log.Printf("Failed to issue reset token for user %d: %v", user.ID, err)
			continue
		}

		if Mailer != nil {
			Mailer.Enqueue(recoveryEmail(user, token))
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": recoveryMessage})
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
// Tokens are strictly single-use: a consumed, expired or superseded token
// is rejected with the same message.
func ConfirmPasswordReset(ctx *gin.Context) {
	var req ConfirmPasswordResetRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var resetToken models.PasswordResetToken

	err := db.DB.Where("user_id = ? AND token = ?", req.UID, req.Token).First(&resetToken).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		} else {
			log.Printf("Database error when fetching reset token: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if resetToken.UsedAt != nil || time.Now().After(resetToken.ExpiresAt) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", req.UID).Update("password_hash", string(passwordHash)).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&resetToken).Update("used_at", &now).Error
	})

	if err != nil {
		log.Printf("Failed to reset password for user %d: %v", req.UID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// issueResetToken mints a fresh single-use token and discards any
// outstanding ones, so only the most recently issued link works.
func issueResetToken(user models.User) (string, error) {
	if err := db.DB.Where("user_id = ? AND used_at IS NULL", user.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return "", err
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	if err := db.DB.Create(&resetToken).Error; err != nil {
		return "", err
	}

	return resetToken.Token, nil
}

func recoveryEmail(user models.User, token string) mailer.Message {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "localhost"
	}

	resetURL := fmt.Sprintf(
		"https://%s/auth/password/reset-password-confirmation/?uid=%d&token=%s",
		domain, user.ID, token,
	)

	body := fmt.Sprintf(
		"Hello,\n\nWe received a request to recover your account.\n\n"+
			"Username: %s\n\n"+
			"To reset your password, visit the following link:\n%s\n\n"+
			"If you didn't request this, you can safely ignore this email.\n\n"+
			"Thanks,\nSlugNest",
		user.Username, resetURL,
	)

	return mailer.Message{
		To:      user.Email,
		Subject: "Account recovery for SlugNest",
		Body:    body,
	}
}
