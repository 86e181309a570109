package seed

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/google/uuid"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
	"github.com/campusone-dev/digital-campus/backend/internal/repository"
)

var requiredHeaders = []string{"name", "email", "phone", "course_code"}

// SeedApplicants 从 CSV 文件导入真实的报名数据
// 表头必须包含 name、email、phone、course_code 四列，课程编码必须已经存在
func SeedApplicants(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/applicants.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	columns := map[string]int{}
	for i, header := range headers {
		columns[header] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := columns[header]; !ok {
			slog.Error("缺少必需的列", "column", header)
			return
		}
	}

	// 课程编码到 ID 的映射
	courses, err := r.GetAllCourses()
	if err != nil {
		slog.Error("无法获取课程列表", "error", err)
		return
	}
	courseIDs := map[string]int64{}
	for _, course := range courses {
		courseIDs[course.Code] = course.ID
	}

	cnt := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("读取记录失败", "error", err)
			return
		}
		if len(record) < len(requiredHeaders) || slices.Contains(record, "") {
			slog.Error("记录不完整，已跳过", "record", record)
			continue
		}

		courseID, ok := courseIDs[record[columns["course_code"]]]
		if !ok {
			slog.Error("课程编码不存在，已跳过", "course_code", record[columns["course_code"]])
			continue
		}

		application := &domain.Application{
			Reference:     uuid.NewString(),
			ApplicantName: record[columns["name"]],
			Email:         record[columns["email"]],
			Phone:         record[columns["phone"]],
			CourseID:      courseID,
			Status:        domain.ApplicationStatusSubmitted,
			PaymentStatus: domain.PaymentStatusPending,
		}
		if err := r.CreateApplication(application); err != nil {
			slog.Error("无法插入申请", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("导入报名数据成功", "count", cnt)
}
