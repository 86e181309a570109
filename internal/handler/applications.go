package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

// SubmitApplication 是公开的报名入口，报名成功后申请进入 submitted 状态
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicantName string `json:"applicantName" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Phone         string `json:"phone" validate:"required"`
		CourseID      int64  `json:"courseId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	course, err := h.repository.GetCourseByID(req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "课程不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !course.IsActive {
		h.errorResponse(w, r, "该课程暂未开放报名")
		return
	}

	application := &domain.Application{
		Reference:     uuid.NewString(),
		ApplicantName: req.ApplicantName,
		Email:         req.Email,
		Phone:         req.Phone,
		CourseID:      course.ID,
		Status:        domain.ApplicationStatusSubmitted,
		PaymentStatus: domain.PaymentStatusPending,
	}

	if err := h.repository.CreateApplication(application); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "报名提交成功", application)
}

func (h *Handler) GetAllApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.repository.GetAllApplications()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请列表成功", applications)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	application := r.Context().Value(ApplicationCtx).(*domain.Application)
	h.successResponse(w, r, "获取申请信息成功", application)
}
