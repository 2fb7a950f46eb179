package model

// Scope identifies the caller a request runs on behalf of.
type Scope struct {
	UserID   string
	Username string
	Channel  Channel
}

// Channel is the transport a request arrived on.
type Channel string

const (
	ChannelHTTP     Channel = "http"
	ChannelTelegram Channel = "telegram"
	ChannelCLI      Channel = "cli"
)
