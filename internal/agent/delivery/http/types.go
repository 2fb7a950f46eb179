package http

type simulateReq struct {
	Message string `json:"message" binding:"required"`
}

type simulateResp struct {
	Reply      string   `json:"reply"`
	State      string   `json:"state"`
	Reason     string   `json:"reason,omitempty"`
	Iterations int      `json:"iterations"`
	Actions    []string `json:"actions"`
}

type statusResp struct {
	Enabled   bool         `json:"enabled"`
	Providers []string     `json:"providers"`
	Memory    memoryStatus `json:"memory"`
}

type memoryStatus struct {
	Messages      int  `json:"messages"`
	HasSystem     bool `json:"has_system"`
	MaxHistory    int  `json:"max_history"`
	Conversations int  `json:"conversations"`
}

type resetResp struct {
	UserID string `json:"user_id"`
}
