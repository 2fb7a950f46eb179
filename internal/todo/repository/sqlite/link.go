package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// LinkTelegramChat binds chatID to userID, replacing any earlier link.
func (r *implRepository) LinkTelegramChat(ctx context.Context, chatID int64, userID string) error {
	const query = `
		INSERT INTO telegram_links (chat_id, user_id, linked_at) VALUES (?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET user_id = excluded.user_id, linked_at = excluded.linked_at`

	if _, err := r.db.ExecContext(ctx, query, chatID, userID, formatTime(time.Now())); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("LinkTelegramChat"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// GetLinkedUser returns the user linked to chatID, or "".
func (r *implRepository) GetLinkedUser(ctx context.Context, chatID int64) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM telegram_links WHERE chat_id = ?`, chatID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetLinkedUser"), err)
		return "", repo.ErrFailedToGet
	}
	return userID, nil
}
