package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/internal/modules/comment/dto"
	"github.com/openlearn/course-library/internal/modules/comment/repository"
	courseRepo "github.com/openlearn/course-library/internal/modules/course/repository"
	courseService "github.com/openlearn/course-library/internal/modules/course/service"
	userRepo "github.com/openlearn/course-library/internal/modules/user/repository"
	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/apperror"
	"github.com/openlearn/course-library/pkg/ratelimiter"
)

const MsgCommentNotFound = "comment not found"

const msgCommentCooldown = "you are commenting too fast, wait a moment"

type CommentService interface {
	Create(ctx context.Context, claim *policy.Claim, courseID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error
}

type commentService struct {
	repo       repository.CommentRepository
	courseRepo courseRepo.CourseRepository
	userRepo   userRepo.UserRepository
	limiter    *ratelimiter.Limiter
	cooldown   time.Duration
	sanitizer  *bluemonday.Policy
}

func NewCommentService(repo repository.CommentRepository, courseRepo courseRepo.CourseRepository, userRepo userRepo.UserRepository, limiter *ratelimiter.Limiter, cooldown time.Duration) CommentService {
	return &commentService{
		repo:       repo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
		limiter:    limiter,
		cooldown:   cooldown,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *commentService) Create(ctx context.Context, claim *policy.Claim, courseID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(courseService.MsgCourseNotFound)
		}
		return nil, err
	}

	if err := policy.Decide(policy.ActionCreateComment, claim, course); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, claim.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid or expired session")
		}
		return nil, err
	}

	if err := s.limiter.Cooldown(ctx, "comment:"+claim.ID.String(), s.cooldown, msgCommentCooldown); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		CourseID: course.ID,
		AuthorID: author.ID,
		Content:  s.sanitizer.Sanitize(req.Content),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.Author = *author
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(MsgCommentNotFound)
		}
		return err
	}

	if err := policy.Decide(policy.ActionDeleteComment, claim, comment); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
