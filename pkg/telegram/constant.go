package telegram

// MaxMessageLength is the Bot API limit for one text message, in UTF-16 code units.
// Messages are split by runes below it.
const MaxMessageLength = 4096

const defaultAPIServer = "https://api.telegram.org"
