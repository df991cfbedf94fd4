package dto

import (
	"time"

	"github.com/google/uuid"

	commentDto "github.com/openlearn/course-library/internal/modules/comment/dto"
	resourceDto "github.com/openlearn/course-library/internal/modules/resource/dto"
	userDto "github.com/openlearn/course-library/internal/modules/user/dto"
)

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=10000"`
	Category    string `json:"category" binding:"required,max=100"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Category    *string `json:"category" binding:"omitempty,min=1,max=100"`
}

// CourseFilter narrows the course listing. Search is a case-insensitive
// substring match on title or description; Category is a case-insensitive
// exact match. Both optional, combined as an intersection.
type CourseFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}

type CourseResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Owner       userDto.UserResponse `json:"owner"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type CourseSummary struct {
	CourseResponse
	ResourceCount int `json:"resource_count"`
	CommentCount  int `json:"comment_count"`
}

type CourseDetail struct {
	CourseResponse
	Resources []resourceDto.ResourceResponse `json:"resources"`
	Comments  []commentDto.CommentResponse   `json:"comments"`
}
