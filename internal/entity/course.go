package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is owned by exactly one account; the owner never changes after
// creation. Deleting the owner cascades to the course and everything under it.
type Course struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       User       `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:100;not null;index" json:"category"`
	Resources   []Resource `gorm:"foreignKey:CourseID" json:"resources,omitempty"`
	Comments    []Comment  `gorm:"foreignKey:CourseID" json:"comments,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
