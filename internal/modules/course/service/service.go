package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/entity"
	commentDto "github.com/openlearn/course-library/internal/modules/comment/dto"
	"github.com/openlearn/course-library/internal/modules/course/dto"
	"github.com/openlearn/course-library/internal/modules/course/repository"
	resourceDto "github.com/openlearn/course-library/internal/modules/resource/dto"
	userDto "github.com/openlearn/course-library/internal/modules/user/dto"
	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/apperror"
)

const MsgCourseNotFound = "course not found"

type CourseService interface {
	Create(ctx context.Context, claim *policy.Claim, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	List(ctx context.Context, filter dto.CourseFilter) ([]dto.CourseSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CourseDetail, error)
	Update(ctx context.Context, claim *policy.Claim, id uuid.UUID, req dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error

	// Authorize resolves the target course and runs the policy for action.
	// Handlers call it ahead of body binding so a denial never depends on the
	// request body.
	Authorize(ctx context.Context, claim *policy.Claim, id uuid.UUID, action policy.Action) (*entity.Course, error)
}

type courseService struct {
	repo      repository.CourseRepository
	sanitizer *bluemonday.Policy
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *courseService) Create(ctx context.Context, claim *policy.Claim, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := policy.Decide(policy.ActionCreateCourse, claim, nil); err != nil {
		return nil, err
	}

	title, err := requireTrimmed(req.Title, "title")
	if err != nil {
		return nil, err
	}
	category, err := requireTrimmed(req.Category, "category")
	if err != nil {
		return nil, err
	}

	course := &entity.Course{
		OwnerID:     claim.ID,
		Title:       title,
		Description: s.sanitizer.Sanitize(req.Description),
		Category:    category,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	course.Owner = entity.User{
		ID:    claim.ID,
		Email: claim.Email,
		Name:  claim.Name,
		Role:  claim.Role,
	}

	resp := buildCourseResponse(course)
	return &resp, nil
}

func (s *courseService) List(ctx context.Context, filter dto.CourseFilter) ([]dto.CourseSummary, error) {
	courses, err := s.repo.FindAll(ctx, filter.Search, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{
			CourseResponse: buildCourseResponse(course),
			ResourceCount:  len(course.Resources),
			CommentCount:   len(course.Comments),
		})
	}

	return summaries, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*dto.CourseDetail, error) {
	course, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(MsgCourseNotFound)
		}
		return nil, err
	}

	detail := &dto.CourseDetail{
		CourseResponse: buildCourseResponse(course),
		Resources:      make([]resourceDto.ResourceResponse, 0, len(course.Resources)),
		Comments:       make([]commentDto.CommentResponse, 0, len(course.Comments)),
	}

	for i := range course.Resources {
		detail.Resources = append(detail.Resources, resourceDto.NewResourceResponse(&course.Resources[i]))
	}
	for i := range course.Comments {
		detail.Comments = append(detail.Comments, commentDto.NewCommentResponse(&course.Comments[i]))
	}

	return detail, nil
}

func (s *courseService) Update(ctx context.Context, claim *policy.Claim, id uuid.UUID, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.Authorize(ctx, claim, id, policy.ActionUpdateCourse)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := requireTrimmed(*req.Title, "title")
		if err != nil {
			return nil, err
		}
		course.Title = title
	}
	if req.Description != nil {
		course.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Category != nil {
		category, err := requireTrimmed(*req.Category, "category")
		if err != nil {
			return nil, err
		}
		course.Category = category
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	// Reload for the owner projection.
	updated, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload course: %w", err)
	}

	resp := buildCourseResponse(updated)
	return &resp, nil
}

func (s *courseService) Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error {
	if _, err := s.Authorize(ctx, claim, id, policy.ActionDeleteCourse); err != nil {
		return err
	}

	// Resources and comments go with the course via FK cascade.
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

func (s *courseService) Authorize(ctx context.Context, claim *policy.Claim, id uuid.UUID, action policy.Action) (*entity.Course, error) {
	// Existence precedes ownership: a missing id is 404 for everyone.
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(MsgCourseNotFound)
		}
		return nil, err
	}

	if err := policy.Decide(action, claim, course); err != nil {
		return nil, err
	}

	return course, nil
}

// requireTrimmed rejects values that are blank once whitespace is stripped,
// which the `required` binding tag lets through.
func requireTrimmed(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperror.New(http.StatusBadRequest, field+" is required", apperror.ErrInvalidInput)
	}
	return trimmed, nil
}

func buildCourseResponse(course *entity.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		Owner:       userDto.NewUserResponse(&course.Owner),
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}
