package models

import "github.com/shopspring/decimal"

type House struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Rent            decimal.Decimal `json:"rent" gorm:"type:decimal(8,2);not null;default:1000.00"`
	Beds            int             `json:"beds" gorm:"not null;default:3"`
	Baths           int             `json:"baths" gorm:"not null;default:3"`
	SquareFeet      *int            `json:"square_feet"`
	Address         string          `json:"address" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text"`
	MoreInformation string          `json:"more_information" gorm:"size:200"`
	Contact         string          `json:"contact"`
}
