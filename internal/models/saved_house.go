package models

import "time"

type SavedHouse struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_house"`
	HouseID uint      `json:"house_id" gorm:"not null;uniqueIndex:idx_user_house"`
	SavedAt time.Time `json:"saved_at" gorm:"autoCreateTime"`

	// Relationships
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	House House `json:"house" gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
