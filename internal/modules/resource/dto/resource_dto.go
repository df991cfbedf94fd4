package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/entity"
)

type CreateResourceRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	URL   string `json:"url" binding:"required,url"`
	Type  string `json:"type" binding:"required,oneof=PDF LINK VIDEO"`
}

type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResourceResponse(resource *entity.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        resource.ID,
		CourseID:  resource.CourseID,
		Title:     resource.Title,
		URL:       resource.URL,
		Type:      resource.Type,
		CreatedAt: resource.CreatedAt,
	}
}
