package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinReviewTextLen = 10
)

type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      Credential `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int        `gorm:"not null" json:"rating"`
	Text      string     `gorm:"type:text;not null" json:"review"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

const (
	ComplaintPending = "pending"
	ComplaintReplied = "replied"
)

type Complaint struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      Credential `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Complaint string     `gorm:"type:text;not null" json:"complaint"`
	Status    string     `gorm:"size:20;not null;default:pending" json:"status"`
	Reply     string     `gorm:"type:text" json:"reply"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"date"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	if c.Status == "" {
		c.Status = ComplaintPending
	}
	return
}
