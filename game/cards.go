package game

import "strings"

// cardMarker is what the server writes into the log when a player draws
// a chance or destiny card.
const cardMarker = "抽到卡片："

type CardKind string

const (
	CardChance  CardKind = "机会卡"
	CardDestiny CardKind = "命运卡"
	CardGeneric CardKind = "卡片"
)

// Card is one drawn-card event pulled out of the log.
type Card struct {
	Kind CardKind
	Text string
	// Line is the full log line the card came from, used as the
	// shown-once key.
	Line string
}

var chanceWords = []string{"银行分红", "股票", "彩票", "奖金", "收入", "前进", "快车"}
var destinyWords = []string{"税", "维修", "医疗", "年费", "账单", "后退", "堵塞"}

// ClassifyCard extracts a card from a log line. The kind is guessed
// from keywords; a server-supplied category field could replace this
// without touching the notification path.
func ClassifyCard(line string) (Card, bool) {
	i := strings.Index(line, cardMarker)
	if i < 0 {
		return Card{}, false
	}
	text := line[i+len(cardMarker):]

	kind := CardGeneric
	if strings.Contains(line, "机会") || containsAny(text, chanceWords) {
		kind = CardChance
	} else if strings.Contains(line, "命运") || containsAny(text, destinyWords) {
		kind = CardDestiny
	}

	return Card{Kind: kind, Text: text, Line: line}, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
