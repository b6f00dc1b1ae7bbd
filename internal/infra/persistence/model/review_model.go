package model

import "time"

// ReviewModel is the GORM-specific struct for the 'reviews' table.
type ReviewModel struct {
	ID        uint       `gorm:"primaryKey"`
	ItemID    uint       `gorm:"not null;uniqueIndex:idx_reviews_item_email"`
	Item      *ItemModel `gorm:"constraint:OnDelete:CASCADE;"`
	Name      string     `gorm:"size:100;not null"`
	Email     string     `gorm:"size:254;not null;uniqueIndex:idx_reviews_item_email"`
	Text      string     `gorm:"type:text;not null"`
	Rating    int        `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	DateAdded time.Time  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
