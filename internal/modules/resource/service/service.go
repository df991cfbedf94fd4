package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/entity"
	courseRepo "github.com/openlearn/course-library/internal/modules/course/repository"
	courseService "github.com/openlearn/course-library/internal/modules/course/service"
	"github.com/openlearn/course-library/internal/modules/resource/dto"
	"github.com/openlearn/course-library/internal/modules/resource/repository"
	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/apperror"
)

const MsgResourceNotFound = "resource not found"

type ResourceService interface {
	Create(ctx context.Context, claim *policy.Claim, courseID uuid.UUID, req dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error
}

type resourceService struct {
	repo       repository.ResourceRepository
	courseRepo courseRepo.CourseRepository
}

func NewResourceService(repo repository.ResourceRepository, courseRepo courseRepo.CourseRepository) ResourceService {
	return &resourceService{
		repo:       repo,
		courseRepo: courseRepo,
	}
}

func (s *resourceService) Create(ctx context.Context, claim *policy.Claim, courseID uuid.UUID, req dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(courseService.MsgCourseNotFound)
		}
		return nil, err
	}

	if err := policy.Decide(policy.ActionCreateResource, claim, course); err != nil {
		return nil, err
	}

	resource := &entity.Resource{
		CourseID: course.ID,
		Title:    req.Title,
		URL:      req.URL,
		Type:     req.Type,
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	resp := dto.NewResourceResponse(resource)
	return &resp, nil
}

func (s *resourceService) Delete(ctx context.Context, claim *policy.Claim, id uuid.UUID) error {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(MsgResourceNotFound)
		}
		return err
	}

	// Resource mutation rights belong to the owner of the parent course.
	if err := policy.Decide(policy.ActionDeleteResource, claim, &resource.Course); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	return nil
}
