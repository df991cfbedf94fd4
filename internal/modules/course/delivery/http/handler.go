package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openlearn/course-library/internal/modules/course/dto"
	course "github.com/openlearn/course-library/internal/modules/course/service"
	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/response"
	"github.com/openlearn/course-library/pkg/validator"
)

type CourseHandler struct {
	service course.CourseService
}

func NewCourseHandler(service course.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

func (h *CourseHandler) Create(c *gin.Context) {
	claim, err := response.GetClaim(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Role gate first: a student gets 403 no matter what the body holds.
	if err := policy.Decide(policy.ActionCreateCourse, claim, nil); err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), claim, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CourseHandler) List(c *gin.Context) {
	var filter dto.CourseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	summaries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": course.MsgCourseNotFound})
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": course.MsgCourseNotFound})
		return
	}

	claim, err := response.GetClaim(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Ownership gate before the body is even looked at.
	if _, err := h.service.Authorize(c.Request.Context(), claim, id, policy.ActionUpdateCourse); err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), claim, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": course.MsgCourseNotFound})
		return
	}

	claim, err := response.GetClaim(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claim, id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted successfully"})
}
