package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/entity"
	userDto "github.com/openlearn/course-library/internal/modules/user/dto"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type CommentResponse struct {
	ID        uuid.UUID            `json:"id"`
	CourseID  uuid.UUID            `json:"course_id"`
	Content   string               `json:"content"`
	Author    userDto.UserResponse `json:"author"`
	CreatedAt time.Time            `json:"created_at"`
}

func NewCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		CourseID:  comment.CourseID,
		Content:   comment.Content,
		Author:    userDto.NewUserResponse(&comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}
