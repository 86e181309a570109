package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
	"github.com/campusone-dev/digital-campus/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repository) CreateApplication(application *domain.Application) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO applications (reference, applicant_name, email, phone, course_id, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{
		application.Reference,
		application.ApplicantName,
		application.Email,
		application.Phone,
		application.CourseID,
		application.Status,
		application.PaymentStatus,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&application.ID, &application.CreatedAt, &application.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	query := `
		SELECT reference, applicant_name, email, phone, course_id, status, payment_status,
			payment_code, razorpay_payment_id, payment_link_id, payment_completed_at, created_at, version
		FROM applications WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	application := &domain.Application{
		ID: id,
	}

	dst := []any{
		&application.Reference,
		&application.ApplicantName,
		&application.Email,
		&application.Phone,
		&application.CourseID,
		&application.Status,
		&application.PaymentStatus,
		&application.PaymentCode,
		&application.RazorpayPaymentID,
		&application.PaymentLinkID,
		&application.PaymentCompletedAt,
		&application.CreatedAt,
		&application.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return application, nil
}

func (r *Repository) GetAllApplications() ([]*domain.Application, error) {
	query := `
		SELECT id, reference, applicant_name, email, phone, course_id, status, payment_status,
			payment_code, razorpay_payment_id, payment_link_id, payment_completed_at, created_at, version
		FROM applications
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []*domain.Application{}
	for rows.Next() {
		var application domain.Application
		dst := []any{
			&application.ID,
			&application.Reference,
			&application.ApplicantName,
			&application.Email,
			&application.Phone,
			&application.CourseID,
			&application.Status,
			&application.PaymentStatus,
			&application.PaymentCode,
			&application.RazorpayPaymentID,
			&application.PaymentLinkID,
			&application.PaymentCompletedAt,
			&application.CreatedAt,
			&application.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		applications = append(applications, &application)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}

// SetApplicationPaymentLink 记录支付链接并把申请转入待支付状态
func (r *Repository) SetApplicationPaymentLink(application *domain.Application, linkID string) error {
	query := `
		UPDATE applications
		SET
			payment_link_id = $1,
			status = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{linkID, domain.ApplicationStatusPendingPayment, application.ID, application.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&application.Version); err != nil {
		return err
	}

	application.PaymentLinkID = &linkID
	application.Status = domain.ApplicationStatusPendingPayment

	return nil
}

// MarkApplicationPaymentExpired 把申请标记为支付已过期，payment_status 保持 pending，允许重新支付
// 已完成的申请不受影响
func (r *Repository) MarkApplicationPaymentExpired(id int64) error {
	query := `
		UPDATE applications
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND payment_status <> $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, domain.ApplicationStatusPaymentExpired, id, domain.PaymentStatusCompleted); err != nil {
		return err
	}

	return nil
}

// 生成唯一支付码的最大重试次数
const maxPaymentCodeAttempts = 5

// ConfirmApplicationPayment 执行支付确认的状态转移
// 整个转移在单个事务内完成：申请行加锁后，已完成的申请直接按幂等重放返回原有支付码，
// 否则生成支付码并通过条件更新一次性写入所有字段。支付码的唯一性由唯一约束保证，
// 冲突时回滚整个事务后重试，绝不会留下部分更新的记录
func (r *Repository) ConfirmApplicationPayment(id int64, razorpayPaymentID string) (*domain.Application, bool, error) {
	for attempt := 0; attempt < maxPaymentCodeAttempts; attempt++ {
		application, alreadyCompleted, err := r.tryConfirmApplicationPayment(id, razorpayPaymentID)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "applications_payment_code_key" {
			// 支付码撞上了已有记录，换一个重来
			continue
		}
		if err != nil {
			return nil, false, err
		}

		return application, alreadyCompleted, nil
	}

	return nil, false, domain.ErrPaymentCodeExhausted
}

func (r *Repository) tryConfirmApplicationPayment(id int64, razorpayPaymentID string) (*domain.Application, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 加行锁，避免处理器的重复回调并发进入
	query := `
		SELECT reference, applicant_name, email, phone, course_id, status, payment_status,
			payment_code, razorpay_payment_id, payment_link_id, payment_completed_at, created_at, version
		FROM applications WHERE id = $1
		FOR UPDATE
	`

	application := &domain.Application{
		ID: id,
	}

	dst := []any{
		&application.Reference,
		&application.ApplicantName,
		&application.Email,
		&application.Phone,
		&application.CourseID,
		&application.Status,
		&application.PaymentStatus,
		&application.PaymentCode,
		&application.RazorpayPaymentID,
		&application.PaymentLinkID,
		&application.PaymentCompletedAt,
		&application.CreatedAt,
		&application.Version,
	}
	if err := tx.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, false, err
	}

	// 幂等重放：原有支付码原样返回，不做任何转移
	if application.PaymentStatus == domain.PaymentStatusCompleted {
		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return application, true, nil
	}

	paymentCode := utils.GeneratePaymentCode()

	query = `
		UPDATE applications
		SET
			payment_code = $1,
			razorpay_payment_id = $2,
			payment_status = $3,
			status = $4,
			payment_completed_at = NOW(),
			version = version + 1
		WHERE id = $5 AND payment_status <> $3
		RETURNING payment_completed_at, version
	`

	args := []any{paymentCode, razorpayPaymentID, domain.PaymentStatusCompleted, domain.ApplicationStatusEnrolled, id}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&application.PaymentCompletedAt, &application.Version); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	application.PaymentCode = &paymentCode
	application.RazorpayPaymentID = &razorpayPaymentID
	application.PaymentStatus = domain.PaymentStatusCompleted
	application.Status = domain.ApplicationStatusEnrolled

	return application, false, nil
}
