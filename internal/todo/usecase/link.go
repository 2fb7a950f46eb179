package usecase

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// LinkTelegramChat binds a Telegram chat to the scope's user.
func (uc *implUseCase) LinkTelegramChat(ctx context.Context, sc model.Scope, chatID int64) error {
	if err := uc.repo.LinkTelegramChat(ctx, chatID, sc.UserID); err != nil {
		uc.l.Errorf(ctx, "uc.LinkTelegramChat: %v", err)
		return mapRepoError(err)
	}
	uc.l.Infof(ctx, "uc.LinkTelegramChat: chat=%d user=%s", chatID, sc.UserID)
	return nil
}

// ResolveTelegramUser returns the user linked to chatID, or "" when none is.
func (uc *implUseCase) ResolveTelegramUser(ctx context.Context, chatID int64) (string, error) {
	userID, err := uc.repo.GetLinkedUser(ctx, chatID)
	if err != nil {
		return "", mapRepoError(err)
	}
	return userID, nil
}
