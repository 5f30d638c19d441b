package repositories

import (
	"context"
	"errors"

	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/core/domain"

	"gorm.io/gorm"
)

// courseRepository implements CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	row := models.CourseFromDomain(course)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateCode
		}
		return err
	}
	course.ID = row.ID
	return nil
}

// GetByCode gets a course by its public code
func (r *courseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var row models.Course
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Update saves every column of an existing course, including a cleared price
func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	row := models.CourseFromDomain(course)
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", course.ID).
		Select("code", "name", "type", "price").
		Updates(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateCode
	}
	return err
}

// List returns the whole catalog ordered by code
func (r *courseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	var rows []*models.Course
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	courses := make([]*domain.Course, len(rows))
	for i, row := range rows {
		courses[i] = row.ToDomain()
	}
	return courses, nil
}

// ExistsByCode checks if a course code is taken
func (r *courseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
