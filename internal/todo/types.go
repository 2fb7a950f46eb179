package todo

// --- UseCase Inputs ---

// CreateInput carries raw values as the caller supplied them. Priority and
// Deadline are normalized by the use case before anything is stored.
type CreateInput struct {
	Title       string
	Description string
	Priority    *int
	Deadline    string
}

// UpdateInput applies only the non-nil fields.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
	Priority    *int
	Deadline    *string
}

// HasChanges reports whether at least one field is set.
func (in UpdateInput) HasChanges() bool {
	return in.Title != nil || in.Description != nil || in.Completed != nil ||
		in.Priority != nil || in.Deadline != nil
}

type SearchInput struct {
	Query string
}
