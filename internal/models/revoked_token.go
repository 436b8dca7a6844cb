package models

import "time"

// RevokedToken blacklists a refresh token by its jti claim. Logout inserts
// a row here; the refresh endpoint refuses any token whose jti is present.
// Rows become garbage once ExpiresAt passes, since the token would no
// longer verify anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
