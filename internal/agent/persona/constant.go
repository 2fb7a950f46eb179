package persona

// DefaultToken is the address every final reply carries.
const DefaultToken = "boss"

// DefaultPalette is the set of reaction symbols a reply may end with.
var DefaultPalette = []string{"😊", "👍", "✅", "📝", "📋", "🗓️", "⏰", "🔍", "👌", "💪"}

// DisplayLayout renders deadlines and the current time, e.g. "May 1, 2024, 03:04 PM".
const DisplayLayout = "January 2, 2006, 03:04 PM"

const (
	completedMark = "✅"
	pendingMark   = "❌"

	listHeader    = "Here are your tasks, %s!"
	emptyList     = "You don't have any tasks yet, %s! Would you like to create one? 📝"
	emptyFallback = "Okay"
)

// markupTokens are removed in this order so longer runs go first.
var markupTokens = []string{"**", "*", "__", "_", "###", "##", "#", "```", "`"}
