package repository

import (
	"context"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

// InsertSentMail 由 mail worker 在投递成功后调用
func (r *Repository) InsertSentMail(mail *domain.SentMail) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO sent_mails (type, recipient, subject)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.dbpool.QueryRowContext(ctx, query, mail.Type, mail.To, mail.Subject).Scan(&mail.ID); err != nil {
		return err
	}

	return nil
}
