package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/slugnest-dev/slugnest/db"
	"github.com/slugnest-dev/slugnest/internal/models"
	"gorm.io/gorm"
)

type CreateHouseRequest struct {
	Rent            *decimal.Decimal `json:"rent"`
	Beds            *int             `json:"beds" binding:"omitempty,min=0"`
	Baths           *int             `json:"baths" binding:"omitempty,min=0"`
	SquareFeet      *int             `json:"square_feet" binding:"omitempty,min=0"`
	Address         string           `json:"address" binding:"required,max=255"`
	Description     string           `json:"description"`
	MoreInformation string           `json:"more_information" binding:"omitempty,url,max=200"`
	Contact         string           `json:"contact"`
}

type PatchHouseRequest struct {
	Rent            *decimal.Decimal `json:"rent"`
	Beds            *int             `json:"beds" binding:"omitempty,min=0"`
	Baths           *int             `json:"baths" binding:"omitempty,min=0"`
	SquareFeet      *int             `json:"square_feet" binding:"omitempty,min=0"`
	Address         *string          `json:"address" binding:"omitempty,max=255"`
	Description     *string          `json:"description"`
	MoreInformation *string          `json:"more_information" binding:"omitempty,url,max=200"`
	Contact         *string          `json:"contact"`
}

// Defaults mirror the database column defaults so a created record reads
// back the same whether or not the client supplied the field.
var (
	defaultRent  = decimal.New(100000, -2) // 1000.00
	defaultBeds  = 3
	defaultBaths = 3
)

func parseHouseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		return 0, false
	}

	return uint(id), true
}

func ListHouses(ctx *gin.Context) {
	houses := []models.House{}

	if err := db.DB.Order("id DESC").Find(&houses).Error; err != nil {
		log.Printf("Failed to list houses: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listings"})
		return
	}

	ctx.JSON(http.StatusOK, houses)
}

func CreateHouse(ctx *gin.Context) {
	var req CreateHouseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Rent != nil && req.Rent.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Rent must not be negative"})
		return
	}

	house := houseFromRequest(req)

	if err := db.DB.Create(&house).Error; err != nil {
		log.Printf("Failed to create house: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	ctx.JSON(http.StatusCreated, house)
}

func GetHouse(ctx *gin.Context) {
	id, ok := parseHouseID(ctx, "id")

	if !ok {
		return
	}

	var house models.House

	if err := db.DB.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			log.Printf("Failed to fetch house %d: %v", id, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		}
		return
	}

	ctx.JSON(http.StatusOK, house)
}

// UpdateHouse is a full replacement: fields the client omits are reset to
// their defaults, matching create semantics.
func UpdateHouse(ctx *gin.Context) {
	id, ok := parseHouseID(ctx, "id")

	if !ok {
		return
	}

	var house models.House

	if err := db.DB.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			log.Printf("Failed to fetch house %d: %v", id, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		}
		return
	}

	var req CreateHouseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Rent != nil && req.Rent.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Rent must not be negative"})
		return
	}

	replacement := houseFromRequest(req)
	replacement.ID = house.ID

	if err := db.DB.Save(&replacement).Error; err != nil {
		log.Printf("Failed to update house %d: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	ctx.JSON(http.StatusOK, replacement)
}

// PatchHouse merges only the fields present in the request body.
func PatchHouse(ctx *gin.Context) {
	id, ok := parseHouseID(ctx, "id")

	if !ok {
		return
	}

	var house models.House

	if err := db.DB.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			log.Printf("Failed to fetch house %d: %v", id, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		}
		return
	}

	var req PatchHouseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Rent != nil && req.Rent.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Rent must not be negative"})
		return
	}

	if req.Rent != nil {
		house.Rent = req.Rent.Round(2)
	}
	if req.Beds != nil {
		house.Beds = *req.Beds
	}
	if req.Baths != nil {
		house.Baths = *req.Baths
	}
	if req.SquareFeet != nil {
		house.SquareFeet = req.SquareFeet
	}
	if req.Address != nil {
		house.Address = *req.Address
	}
	if req.Description != nil {
		house.Description = *req.Description
	}
	if req.MoreInformation != nil {
		house.MoreInformation = *req.MoreInformation
	}
	if req.Contact != nil {
		house.Contact = *req.Contact
	}

	if err := db.DB.Save(&house).Error; err != nil {
		log.Printf("Failed to update house %d: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	ctx.JSON(http.StatusOK, house)
}

func DeleteHouse(ctx *gin.Context) {
	id, ok := parseHouseID(ctx, "id")

	if !ok {
		return
	}

	var house models.House

	if err := db.DB.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			log.Printf("Failed to fetch house %d: %v", id, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		}
		return
	}

	if err := db.DB.Delete(&house).Error; err != nil {
		log.Printf("Failed to delete house %d: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func houseFromRequest(req CreateHouseRequest) models.House {
	house := models.House{
		Rent:            defaultRent,
		Beds:            defaultBeds,
		Baths:           defaultBaths,
		SquareFeet:      req.SquareFeet,
		Address:         req.Address,
		Description:     req.Description,
		MoreInformation: req.MoreInformation,
		Contact:         req.Contact,
	}

	if req.Rent != nil {
		house.Rent = req.Rent.Round(2)
	}
	if req.Beds != nil {
		house.Beds = *req.Beds
	}
	if req.Baths != nil {
		house.Baths = *req.Baths
	}

	return house
}
