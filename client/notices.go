package client

import (
	"github.com/tinwheel/tycoon/game"
)

// tailWindow is how far back in the log a fresh card line is looked
// for. The server appends a handful of lines per action, so anything
// deeper has been on screen already.
const tailWindow = 3

// noticeFilter surfaces each drawn-card log line exactly once. The
// shown-once key is the exact line text, so a byte-identical repeat
// draw is suppressed; a positional key would need the server to number
// its log.
type noticeFilter struct {
	lastShown string
}

// scan looks at the newest tail entries and returns the most recent
// card line that has not been shown yet. Scanning the same tail again
// returns nothing.
func (f *noticeFilter) scan(tail []string) (game.Card, bool) {
	for i := len(tail) - 1; i >= 0; i-- {
		card, ok := game.ClassifyCard(tail[i])
		if !ok {
			continue
		}
		if card.Line == f.lastShown {
			return game.Card{}, false
		}
		f.lastShown = card.Line
		return card, true
	}
	return game.Card{}, false
}
