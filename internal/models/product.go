package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a classified listing.
//
// LikeCount is a denormalized cache of ProductLike rows; it is recomputed from
// the like table on every accepted like rather than incremented, so it cannot
// drift from the authoritative record set. IsPromoted is monotonic: once a
// product is promoted it never reverts, and PromotedAt is written exactly once
// on the false->true transition.
type Product struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"user"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Price       string     `gorm:"not null" json:"price"`
	Location    string     `gorm:"not null" json:"location"`
	Category    string     `gorm:"not null;index" json:"category"`
	ImageURL    string     `json:"image_url"`
	LikeCount   int        `gorm:"not null;default:0" json:"like_count"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`
	IsPromoted  bool       `gorm:"not null;default:false" json:"is_promoted"`
	PromotedAt  *time.Time `json:"promoted_at"`
	IsReserved  bool       `gorm:"not null;default:false" json:"is_reserved"`
	IsFree      bool       `gorm:"not null;default:false" json:"is_free"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Liked indicates whether the current requesting user liked this product (computed)
	Liked bool `gorm:"->" json:"liked"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
