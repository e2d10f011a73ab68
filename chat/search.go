package chat

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

// Matcher decides whether a message matches a search term.
type Matcher func(content, term string) bool

// SubstringMatch is a case-insensitive substring test.
func SubstringMatch(content, term string) bool {
	return strings.Contains(strings.ToLower(content), strings.ToLower(term))
}

// FuzzyMatch accepts content when every rune of term appears in it in
// order, scored with fzf's v2 algorithm. Matching is case-insensitive
// unless term contains an upper-case letter.
func FuzzyMatch(content, term string) bool {
	return FuzzyScore(content, term) >= 0
}

// FuzzyScore returns fzf's score for term in content, or -1 when it does not
// match.
func FuzzyScore(content, term string) int {
	if term == "" {
		return 0
	}
	initAlgo.Do(func() { algo.Init("default") })

	caseSensitive := strings.ToLower(term) != term
	text := content
	if !caseSensitive {
		text = strings.ToLower(content)
	}
	chars := util.ToChars([]byte(text))
	slab := util.MakeSlab(16384, 1024)
	result, _ := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, []rune(term), false, slab)
	if result.Start < 0 {
		return -1
	}
	return result.Score
}

// Filter returns the messages whose content matches term, in order. An empty
// term keeps everything.
func Filter(messages []Message, term string, match Matcher) []Message {
	if term == "" {
		return append([]Message(nil), messages...)
	}
	if match == nil {
		match = SubstringMatch
	}
	var out []Message
	for _, m := range messages {
		if match(m.Content, term) {
			out = append(out, m)
		}
	}
	return out
}
