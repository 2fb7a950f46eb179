package http

import (
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Priority    *int   `json:"priority"`
	Deadline    string `json:"deadline"`
}

func (r createReq) toInput() todo.CreateInput {
	return todo.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
	}
}

type listReq struct {
	Query string `form:"q"`
}

type updateReq struct {
	ID          string  `json:"-"` // populated from URI param
	Title       *string `json:"title"        binding:"omitempty,max=255"`
	Description *string `json:"description"  binding:"omitempty,max=2000"`
	Completed   *bool   `json:"is_completed"`
	Priority    *int    `json:"priority"`
	Deadline    *string `json:"deadline"`
}

func (r updateReq) toInput() todo.UpdateInput {
	return todo.UpdateInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
	}
}

// --- Response DTOs ---

type todoResp struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Completed     bool              `json:"is_completed"`
	Priority      int               `json:"priority"`
	PriorityLabel string            `json:"priority_label"`
	Deadline      time.Time         `json:"deadline"`
	CreatedAt     response.DateTime `json:"created_at"`
	UpdatedAt     response.DateTime `json:"updated_at"`
}

func newTodoResp(t model.Todo) todoResp {
	return todoResp{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Completed:     t.Completed,
		Priority:      t.Priority,
		PriorityLabel: model.PriorityLabel(t.Priority),
		Deadline:      t.Deadline.UTC(),
		CreatedAt:     response.DateTime(t.CreatedAt),
		UpdatedAt:     response.DateTime(t.UpdatedAt),
	}
}

type itemResp struct {
	Todo todoResp `json:"todo"`
}

func (h *handler) newItemResp(t model.Todo) itemResp {
	return itemResp{Todo: newTodoResp(t)}
}

type listResp struct {
	Todos []todoResp `json:"todos"`
	Total int        `json:"total"`
}

func (h *handler) newListResp(todos []model.Todo) listResp {
	items := make([]todoResp, len(todos))
	for i, t := range todos {
		items[i] = newTodoResp(t)
	}
	return listResp{
		Todos: items,
		Total: len(items),
	}
}
