package main

import "time"

const (
	defaultUserID   = "cli_user"
	defaultTokenTTL = 24 * time.Hour

	promptPrefix = "you> "
	replyPrefix  = "bot> "
)
