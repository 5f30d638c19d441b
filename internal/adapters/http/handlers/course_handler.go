package handlers

import (
	"errors"

	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/core/services"
	"studyon-billing/internal/pkg/response"
	"studyon-billing/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CourseHandler handles catalog and purchase endpoints
type CourseHandler struct {
	courseService  *services.CourseService
	paymentService *services.PaymentService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService, paymentService *services.PaymentService) *CourseHandler {
	return &CourseHandler{
		courseService:  courseService,
		paymentService: paymentService,
	}
}

// CourseRequest represents create/edit course body; type is a name or 0/1/2
type CourseRequest struct {
	Code  string            `json:"code" validate:"required,max=255"`
	Name  string            `json:"name" validate:"max=255"`
	Type  domain.CourseType `json:"type"`
	Price *decimal.Decimal  `json:"price"`
}

// PayResponse is returned by a successful purchase
type PayResponse struct {
	CourseType domain.CourseType `json:"course_type"`
	ExpiresAt  string            `json:"expires_at,omitempty"`
}

func (r *CourseRequest) toInput() *services.CourseInput {
	return &services.CourseInput{
		Code:  r.Code,
		Name:  r.Name,
		Type:  r.Type,
		Price: r.Price,
	}
}

// List returns the catalog
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Response{data=[]models.CourseResponse}
// @Router /courses [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courseService.List(c.Context())
	if err != nil {
		return ledgerError(c, err)
	}

	items := make([]*models.CourseResponse, len(courses))
	for i, course := range courses {
		items[i] = models.NewCourseResponse(course)
	}
	return response.Success(c, "Courses retrieved successfully", items)
}

// Get returns one course
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Response{data=models.CourseResponse}
// @Failure 404 {object} response.Response
// @Router /courses/{code} [get]
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	course, err := h.courseService.Get(c.Context(), c.Params("code"))
	if err != nil {
		return ledgerError(c, err)
	}
	return response.Success(c, "Course retrieved successfully", models.NewCourseResponse(course))
}

// Create adds a course (super admin only)
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourseRequest true "Course"
// @Success 201 {object} response.Response{data=models.CourseResponse}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /courses/new [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	course, err := h.courseService.Create(c.Context(), req.toInput())
	if err != nil {
		return ledgerError(c, err)
	}
	return response.Created(c, "Course created successfully", models.NewCourseResponse(course))
}

// Edit replaces a course (super admin only)
// @Summary Edit course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Current course code"
// @Param body body CourseRequest true "Course"
// @Success 200 {object} response.Response{data=models.CourseResponse}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /courses/{code}/edit [post]
func (h *CourseHandler) Edit(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	course, err := h.courseService.Edit(c.Context(), c.Params("code"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return response.Conflict(c, "Курс с таким кодом не существует")
		}
		return ledgerError(c, err)
	}
	return response.Success(c, "Course updated successfully", models.NewCourseResponse(course))
}

// Pay buys or rents a course for the authenticated user
// @Summary Pay for course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param code path string true "Course code"
// @Success 200 {object} response.Response{data=PayResponse}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 406 {object} response.Response
// @Router /courses/{code}/pay [post]
func (h *CourseHandler) Pay(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Пользователь не авторизован")
	}

	result, err := h.paymentService.Purchase(c.Context(), userID, c.Params("code"))
	if err != nil {
		return ledgerError(c, err)
	}

	resp := &PayResponse{CourseType: result.Course.Type}
	if exp := result.Transaction.ExpirationDate; exp != nil {
		resp.ExpiresAt = exp.Format(models.DateTimeLayout)
	}
	return response.Success(c, "Course paid successfully", resp)
}
