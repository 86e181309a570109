package repository

import (
	"context"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func (r *Repository) CreateAnnouncement(announcement *domain.Announcement) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO announcements (title, content, priority, audience, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{
		announcement.Title,
		announcement.Content,
		announcement.Priority,
		announcement.Audience,
		announcement.IsActive,
		announcement.ExpiresAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&announcement.ID, &announcement.CreatedAt, &announcement.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAnnouncementByID(id int64) (*domain.Announcement, error) {
	query := `
		SELECT title, content, priority, audience, is_active, expires_at, created_at, version
		FROM announcements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	announcement := &domain.Announcement{
		ID: id,
	}

	dst := []any{
		&announcement.Title,
		&announcement.Content,
		&announcement.Priority,
		&announcement.Audience,
		&announcement.IsActive,
		&announcement.ExpiresAt,
		&announcement.CreatedAt,
		&announcement.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return announcement, nil
}

func (r *Repository) GetAllAnnouncements() ([]*domain.Announcement, error) {
	query := `
		SELECT id, title, content, priority, audience, is_active, expires_at, created_at, version
		FROM announcements
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := []*domain.Announcement{}
	for rows.Next() {
		var announcement domain.Announcement
		dst := []any{
			&announcement.ID,
			&announcement.Title,
			&announcement.Content,
			&announcement.Priority,
			&announcement.Audience,
			&announcement.IsActive,
			&announcement.ExpiresAt,
			&announcement.CreatedAt,
			&announcement.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		announcements = append(announcements, &announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *Repository) UpdateAnnouncement(announcement *domain.Announcement) error {
	query := `
		UPDATE announcements
		SET
			title = $1,
			content = $2,
			priority = $3,
			audience = $4,
			is_active = $5,
			expires_at = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		announcement.Title,
		announcement.Content,
		announcement.Priority,
		announcement.Audience,
		announcement.IsActive,
		announcement.ExpiresAt,
		announcement.ID,
		announcement.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&announcement.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAnnouncement(id int64) error {
	query := `
		DELETE FROM announcements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
