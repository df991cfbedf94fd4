package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResourceTypePDF   = "PDF"
	ResourceTypeLink  = "LINK"
	ResourceTypeVideo = "VIDEO"
)

type Resource struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    Course    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Type      string    `gorm:"size:20;not null" json:"type"` // 'PDF', 'LINK', 'VIDEO'
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
