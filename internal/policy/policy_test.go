package policy

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/pkg/apperror"
)

func TestDecide(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	professor := &Claim{ID: ownerID, Role: entity.RoleProfessor}
	student := &Claim{ID: strangerID, Role: entity.RoleStudent}
	ownedCourse := &entity.Course{OwnerID: ownerID}
	comment := &entity.Comment{AuthorID: strangerID}

	tests := []struct {
		name       string
		action     Action
		claim      *Claim
		target     any
		wantStatus int
	}{
		{
			name:       "anonymous read allowed",
			action:     ActionReadCatalog,
			claim:      nil,
			wantStatus: 0,
		},
		{
			name:       "authenticated read allowed",
			action:     ActionReadCatalog,
			claim:      student,
			wantStatus: 0,
		},
		{
			name:       "anonymous mutation unauthorized",
			action:     ActionCreateCourse,
			claim:      nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "student cannot create course",
			action:     ActionCreateCourse,
			claim:      student,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "professor creates course",
			action:     ActionCreateCourse,
			claim:      professor,
			wantStatus: 0,
		},
		{
			name:       "owner updates course",
			action:     ActionUpdateCourse,
			claim:      professor,
			target:     ownedCourse,
			wantStatus: 0,
		},
		{
			name:       "non-owner cannot update course",
			action:     ActionUpdateCourse,
			claim:      student,
			target:     ownedCourse,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "non-owner cannot delete course",
			action:     ActionDeleteCourse,
			claim:      student,
			target:     ownedCourse,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "non-owner cannot add resource",
			action:     ActionCreateResource,
			claim:      student,
			target:     ownedCourse,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "owner removes resource",
			action:     ActionDeleteResource,
			claim:      professor,
			target:     ownedCourse,
			wantStatus: 0,
		},
		{
			name:       "any authenticated user comments",
			action:     ActionCreateComment,
			claim:      student,
			target:     ownedCourse,
			wantStatus: 0,
		},
		{
			name:       "anonymous cannot comment",
			action:     ActionCreateComment,
			claim:      nil,
			target:     ownedCourse,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "author deletes own comment",
			action:     ActionDeleteComment,
			claim:      student,
			target:     comment,
			wantStatus: 0,
		},
		{
			name:       "non-author cannot delete comment",
			action:     ActionDeleteComment,
			claim:      professor,
			target:     comment,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.action, tt.claim, tt.target)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("Decide() = %v, want allow", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Decide() = allow, want status %d", tt.wantStatus)
			}
			if got := apperror.MapErrorToStatus(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestDecideDenyMessagesAreStatic(t *testing.T) {
	student := &Claim{ID: uuid.New(), Role: entity.RoleStudent}
	course := &entity.Course{OwnerID: uuid.New(), Title: "secret internal title"}

	err := Decide(ActionDeleteCourse, student, course)
	if err == nil {
		t.Fatal("expected denial")
	}
	if err.Error() != MsgNotCourseOwner {
		t.Errorf("message = %q, want %q", err.Error(), MsgNotCourseOwner)
	}
}
