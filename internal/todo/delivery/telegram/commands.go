package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// command handles slash commands. Unknown commands get the help text.
func (h *handler) command(ctx context.Context, sc model.Scope, chatID int64, text string) (string, error) {
	name, arg, _ := strings.Cut(text, " ")
	// "/list@TodoBot" in group chats
	name, _, _ = strings.Cut(strings.ToLower(name), "@")
	arg = strings.TrimSpace(arg)

	switch name {
	case cmdStart:
		return fmt.Sprintf(msgWelcome, h.persona.Token(), h.issueLinkCode(chatID)), nil
	case cmdList:
		return h.listReply(ctx, sc)
	case cmdAdd:
		return h.add(ctx, sc, arg)
	case cmdDone:
		return h.byIndex(ctx, sc, cmdDone, arg, h.complete)
	case cmdDelete:
		return h.byIndex(ctx, sc, cmdDelete, arg, h.remove)
	case cmdShow:
		return h.byIndex(ctx, sc, cmdShow, arg, func(_ context.Context, _ model.Scope, index int, t model.Todo) (string, error) {
			return h.persona.FormatTask(index, t), nil
		})
	default:
		return msgHelp, nil
	}
}

func (h *handler) listReply(ctx context.Context, sc model.Scope) (string, error) {
	todos, err := h.uc.List(ctx, sc)
	if err != nil {
		return "", err
	}
	return h.persona.ListReply(todos), nil
}

func (h *handler) add(ctx context.Context, sc model.Scope, title string) (string, error) {
	if title == "" {
		return msgAddUsage, nil
	}
	t, err := h.uc.Create(ctx, sc, todo.CreateInput{Title: title})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(msgCreated, t.Title, h.persona.Token()), nil
}

func (h *handler) complete(ctx context.Context, sc model.Scope, _ int, t model.Todo) (string, error) {
	done := true
	updated, err := h.uc.Update(ctx, sc, todo.UpdateInput{ID: t.ID, Completed: &done})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(msgCompleted, updated.Title, h.persona.Token()), nil
}

func (h *handler) remove(ctx context.Context, sc model.Scope, _ int, t model.Todo) (string, error) {
	deleted, err := h.uc.Delete(ctx, sc, t.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(msgDeleted, deleted.Title, h.persona.Token()), nil
}

type indexedAction func(ctx context.Context, sc model.Scope, index int, t model.Todo) (string, error)

// byIndex resolves a 1-based position from /list and runs fn on that todo.
func (h *handler) byIndex(ctx context.Context, sc model.Scope, cmd, arg string, fn indexedAction) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Sprintf(msgIndexUsage, cmd), nil
	}

	todos, err := h.uc.List(ctx, sc)
	if err != nil {
		return "", err
	}
	if n > len(todos) {
		return fmt.Sprintf(msgNoSuchTask, n, h.persona.Token()), nil
	}
	return fn(ctx, sc, n, todos[n-1])
}

// issueLinkCode stores a short one-time code that an app user can redeem for chatID.
func (h *handler) issueLinkCode(chatID int64) string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:linkCodeLength])
	h.codes.Add(code, chatID)
	return code
}
