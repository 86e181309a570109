package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func (h *Handler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repository.GetAllCourses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取课程列表成功", courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course := r.Context().Value(CourseCtx).(*domain.Course)
	h.successResponse(w, r, "获取课程信息成功", course)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code" validate:"required"`
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Fee         int64  `json:"fee" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	course := &domain.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Fee:         req.Fee,
		IsActive:    true,
	}

	if err := h.repository.CreateCourse(course); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "courses_code_key":
			h.badRequest(w, r, errors.New("课程编码已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "课程创建成功", course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        *string `json:"code"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Fee         *int64  `json:"fee" validate:"omitempty,gt=0"`
		IsActive    *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	course := r.Context().Value(CourseCtx).(*domain.Course)

	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Fee != nil {
		course.Fee = *req.Fee
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateCourse(course); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新课程失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新课程成功", course)
}
