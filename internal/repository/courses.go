package repository

import (
	"context"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func (r *Repository) CreateCourse(course *domain.Course) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO courses (code, name, description, fee, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{course.Code, course.Name, course.Description, course.Fee, course.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&course.ID, &course.CreatedAt, &course.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCourseByID(id int64) (*domain.Course, error) {
	query := `
		SELECT code, name, description, fee, is_active, created_at, version
		FROM courses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	course := &domain.Course{
		ID: id,
	}

	dst := []any{&course.Code, &course.Name, &course.Description, &course.Fee, &course.IsActive, &course.CreatedAt, &course.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return course, nil
}

func (r *Repository) GetAllCourses() ([]*domain.Course, error) {
	query := `
		SELECT id, code, name, description, fee, is_active, created_at, version FROM courses
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		var course domain.Course
		dst := []any{&course.ID, &course.Code, &course.Name, &course.Description, &course.Fee, &course.IsActive, &course.CreatedAt, &course.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *Repository) UpdateCourse(course *domain.Course) error {
	query := `
		UPDATE courses
		SET
			code = $1,
			name = $2,
			description = $3,
			fee = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{course.Code, course.Name, course.Description, course.Fee, course.IsActive, course.ID, course.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&course.Version); err != nil {
		return err
	}

	return nil
}
