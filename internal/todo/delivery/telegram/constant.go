package telegram

import "time"

const (
	linkCodeTTL    = 10 * time.Minute
	linkCodeLength = 8
	linkCacheSize  = 10000

	userIDPrefix = "telegram_"
)

const (
	cmdStart  = "/start"
	cmdHelp   = "/help"
	cmdList   = "/list"
	cmdAdd    = "/add"
	cmdDone   = "/done"
	cmdDelete = "/delete"
	cmdShow   = "/show"
)

const (
	msgWelcome = "👋 Welcome to TodoBot, %s!\n\n" +
		"Tell me what you need in plain words, e.g. \"remind me to call mom tomorrow at 5pm\".\n\n" +
		"To use the same todos as your app account, sign in and redeem this code within 10 minutes:\n%s"
	msgHelp = "Commands:\n" +
		"/list - show your tasks\n" +
		"/add <title> - create a task\n" +
		"/done <n> - mark task n as completed\n" +
		"/delete <n> - delete task n\n" +
		"/show <n> - show task n\n\n" +
		"Anything else is handled by the assistant."
	msgAddUsage     = "Usage: /add <title>"
	msgIndexUsage   = "Usage: %s <n>, where n is the task number from /list"
	msgNoSuchTask   = "Task #%d does not exist, %s. Send /list to see your tasks."
	msgCreated      = "Created \"%s\", %s! 📝"
	msgCompleted    = "Marked \"%s\" as completed, %s! ✅"
	msgDeleted      = "Deleted \"%s\", %s! 👍"
	msgFailure      = "Sorry, I encountered an error processing your request. Please try again later."
	msgRateLimited  = "You are sending messages too fast, %s. Please wait a moment."
	msgLinked       = "This chat is now linked to your account, %s! 👌"
	statusAccepted  = "accepted"
	statusIgnored   = "ignored"
	statusThrottled = "rate_limited"
)
