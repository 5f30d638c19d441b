package services

import (
	"context"
	"log"
	"strings"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CourseService manages the course catalog
type CourseService struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo repositories.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// CourseInput carries the editable fields of a course
type CourseInput struct {
	Code  string
	Name  string
	Type  domain.CourseType
	Price *decimal.Decimal
}

// List returns the whole catalog
func (s *CourseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.courseRepo.List(ctx)
}

// Get returns one course by code
func (s *CourseService) Get(ctx context.Context, code string) (*domain.Course, error) {
	return s.courseRepo.GetByCode(ctx, code)
}

// Create adds a course to the catalog
func (s *CourseService) Create(ctx context.Context, input *CourseInput) (*domain.Course, error) {
	course, err := buildCourse(input)
	if err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByCode(ctx, course.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCode
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	log.Printf("✅ Course created: %s (%s)", course.Code, course.Type)
	return course, nil
}

// Edit replaces the fields of the course currently known as code
func (s *CourseService) Edit(ctx context.Context, code string, input *CourseInput) (*domain.Course, error) {
	course, err := buildCourse(input)
	if err != nil {
		return nil, err
	}

	current, err := s.courseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	course.ID = current.ID

	// A new code must not belong to another course
	if course.Code != current.Code {
		exists, err := s.courseRepo.ExistsByCode(ctx, course.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateCode
		}
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	log.Printf("✅ Course updated: %s -> %s", current.Code, course.Code)
	return course, nil
}

// buildCourse checks type, name then price and drops the price of free courses
func buildCourse(input *CourseInput) (*domain.Course, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrUnknownCourseType
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	course := &domain.Course{
		Code: strings.TrimSpace(input.Code),
		Name: name,
		Type: input.Type,
	}
	if input.Type != domain.CourseFree {
		if input.Price == nil || !input.Price.Round(2).IsPositive() {
			return nil, domain.ErrPriceRequired
		}
		course.Price = decimal.NewNullDecimal(input.Price.Round(2))
	}

	if course.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	return course, nil
}
