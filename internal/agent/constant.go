package agent

import "time"

const (
	DefaultActionTimeout = 10 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryDelay    = 500 * time.Millisecond
)

const (
	msgUnknownAction = "unknown action %q; use one of %v"
	msgAmbiguous     = "todoId is required for %s; choose the matching todo from candidates and retry with its id"
	msgNoCandidates  = "todoId is required for %s and the user has no todos"
	msgStore         = "the todo store is unavailable"
	msgTimeout       = "the todo store did not answer in time"
)

// ParamTodoID names the todo an update or delete acts on.
const ParamTodoID = "todoId"

// params the model must never set.
var reservedParams = []string{"userId", "user_id", "userID"}
