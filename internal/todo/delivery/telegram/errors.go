package telegram

import "errors"

var (
	errUnknownLinkCode = errors.New("link code is unknown or expired")
	errNoScope         = errors.New("missing caller scope")
)
