package policy

import (
	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/pkg/apperror"
)

// Claim is the identity resolved from a validated session credential.
type Claim struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  string
}

// IsProfessor reports whether the claim carries the professor role.
func (c *Claim) IsProfessor() bool {
	return c != nil && c.Role == entity.RoleProfessor
}

// Action is an operation gated by the policy.
type Action int

const (
	ActionCreateCourse Action = iota
	ActionUpdateCourse
	ActionDeleteCourse
	ActionCreateResource
	ActionDeleteResource
	ActionCreateComment
	ActionDeleteComment
	ActionReadCatalog
)

// Caller-visible denial messages. Static on purpose: they must not leak
// anything about the target beyond the rule that rejected the request.
const (
	MsgAuthRequired   = "authentication required"
	MsgNotProfessor   = "only professors can create courses"
	MsgNotCourseOwner = "you do not own this course"
	MsgNotAuthor      = "you are not the author of this comment"
)

// Decide evaluates whether claim may perform action on target. Rules are
// checked in order; the first match wins. Reads are always allowed, including
// for anonymous callers (claim == nil). Callers must resolve the target before
// asking, so a missing entity surfaces as 404 ahead of any denial here.
func Decide(action Action, claim *Claim, target any) error {
	if action == ActionReadCatalog {
		return nil
	}

	if claim == nil {
		return apperror.Unauthorized(MsgAuthRequired)
	}

	switch action {
	case ActionCreateCourse:
		if !claim.IsProfessor() {
			return apperror.Forbidden(MsgNotProfessor)
		}
		return nil

	case ActionUpdateCourse, ActionDeleteCourse, ActionCreateResource, ActionDeleteResource:
		course, ok := target.(*entity.Course)
		if !ok || course == nil {
			return apperror.ErrInternal
		}
		if course.OwnerID != claim.ID {
			return apperror.Forbidden(MsgNotCourseOwner)
		}
		return nil

	case ActionCreateComment:
		// Any authenticated caller may comment.
		return nil

	case ActionDeleteComment:
		comment, ok := target.(*entity.Comment)
		if !ok || comment == nil {
			return apperror.ErrInternal
		}
		if comment.AuthorID != claim.ID {
			return apperror.Forbidden(MsgNotAuthor)
		}
		return nil
	}

	return apperror.ErrInternal
}
