package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/internal/modules/resource/dto"
	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/apperror"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*entity.Course
}

func (r *fakeCourseRepo) Create(_ context.Context, course *entity.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Course, error) {
	if course, ok := r.courses[id]; ok {
		return course, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCourseRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeCourseRepo) FindAll(context.Context, string, string) ([]*entity.Course, error) {
	return nil, nil
}

func (r *fakeCourseRepo) Update(context.Context, *entity.Course) error { return nil }

func (r *fakeCourseRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeResourceRepo struct {
	resources map[uuid.UUID]*entity.Resource
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *entity.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	r.resources[resource.ID] = resource
	return nil
}

func (r *fakeResourceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Resource, error) {
	if resource, ok := r.resources[id]; ok {
		return resource, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.resources, id)
	return nil
}

type fixture struct {
	svc       ResourceService
	resources *fakeResourceRepo
	course    *entity.Course
	owner     *policy.Claim
	stranger  *policy.Claim
}

func newFixture() *fixture {
	owner := &policy.Claim{ID: uuid.New(), Role: entity.RoleProfessor}
	course := &entity.Course{ID: uuid.New(), OwnerID: owner.ID, Title: "Go 101", Category: "Programming"}

	courses := &fakeCourseRepo{courses: map[uuid.UUID]*entity.Course{course.ID: course}}
	resources := &fakeResourceRepo{resources: map[uuid.UUID]*entity.Resource{}}

	return &fixture{
		svc:       NewResourceService(resources, courses),
		resources: resources,
		course:    course,
		owner:     owner,
		stranger:  &policy.Claim{ID: uuid.New(), Role: entity.RoleProfessor},
	}
}

func TestCreateResource(t *testing.T) {
	f := newFixture()
	req := dto.CreateResourceRequest{Title: "Slides", URL: "https://example.com/slides.pdf", Type: entity.ResourceTypePDF}

	resp, err := f.svc.Create(context.Background(), f.owner, f.course.ID, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.CourseID != f.course.ID || resp.Type != entity.ResourceTypePDF {
		t.Errorf("resp = %+v", resp)
	}
	if len(f.resources.resources) != 1 {
		t.Error("resource not persisted")
	}
}

func TestCreateResourceNonOwner(t *testing.T) {
	f := newFixture()
	req := dto.CreateResourceRequest{Title: "Slides", URL: "https://example.com", Type: entity.ResourceTypeLink}

	// Owning a professorship is not enough, the course must be yours.
	_, err := f.svc.Create(context.Background(), f.stranger, f.course.ID, req)
	if got := apperror.MapErrorToStatus(err); got != http.StatusForbidden {
		t.Errorf("status = %d, want %d", got, http.StatusForbidden)
	}
	if len(f.resources.resources) != 0 {
		t.Error("resource persisted despite denial")
	}
}

func TestCreateResourceMissingCourse(t *testing.T) {
	f := newFixture()
	req := dto.CreateResourceRequest{Title: "Slides", URL: "https://example.com", Type: entity.ResourceTypeLink}

	_, err := f.svc.Create(context.Background(), f.owner, uuid.New(), req)
	if got := apperror.MapErrorToStatus(err); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestDeleteResource(t *testing.T) {
	f := newFixture()
	resource := &entity.Resource{ID: uuid.New(), CourseID: f.course.ID, Course: *f.course, Title: "Old", URL: "https://example.com", Type: entity.ResourceTypeLink}
	f.resources.resources[resource.ID] = resource

	if err := f.svc.Delete(context.Background(), f.stranger, resource.ID); err == nil {
		t.Fatal("non-owner removed a resource")
	} else if got := apperror.MapErrorToStatus(err); got != http.StatusForbidden {
		t.Errorf("status = %d, want %d", got, http.StatusForbidden)
	}

	if err := f.svc.Delete(context.Background(), f.owner, resource.ID); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	if len(f.resources.resources) != 0 {
		t.Error("resource still present after delete")
	}
}

func TestDeleteResourceMissing(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), f.owner, uuid.New())
	if got := apperror.MapErrorToStatus(err); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}
