package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slugnest-dev/slugnest/db"
	"github.com/slugnest-dev/slugnest/internal/models"
	"github.com/slugnest-dev/slugnest/internal/utils"
	"gorm.io/gorm"
)

type SaveHouseRequest struct {
	HouseID uint `json:"house_id" binding:"required"`
}

func ListSavedHouses(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	saved := []models.SavedHouse{}

	if err := db.DB.Preload("House").Where("user_id = ?", userID).Order("saved_at DESC").Find(&saved).Error; err != nil {
		log.Printf("Failed to list saved houses for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve saved listings"})
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// SaveHouse bookmarks a house for the caller. Saving the same house twice is
// idempotent: the unique index on (user_id, house_id) rejects the duplicate
// row and the existing association is returned instead.
func SaveHouse(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SaveHouseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "house_id is required"})
		return
	}

	var house models.House

	if err := db.DB.First(&house, req.HouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			log.Printf("Failed to fetch house %d: %v", req.HouseID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		}
		return
	}

	entry := models.SavedHouse{
		UserID:  userID,
		HouseID: house.ID,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.SavedHouse

			if err := db.DB.Preload("House").Where("user_id = ? AND house_id = ?", userID, house.ID).First(&existing).Error; err != nil {
				log.Printf("Failed to fetch existing saved house: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"status": "already saved", "saved_house": existing})
			return
		}

		log.Printf("Failed to save house %d for user %d: %v", house.ID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		return
	}

	entry.House = house

	ctx.JSON(http.StatusCreated, gin.H{"status": "created", "saved_house": entry})
}

func UnsaveHouse(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	houseID, ok := parseHouseID(ctx, "house_id")

	if !ok {
		return
	}

	result := db.DB.Where("user_id = ? AND house_id = ?", userID, houseID).Delete(&models.SavedHouse{})

	if result.Error != nil {
		log.Printf("Failed to unsave house %d for user %d: %v", houseID, userID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove saved listing"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Saved listing not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
