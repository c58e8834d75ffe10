// internal/agents/lexicon.go
package agents

import (
	"strconv"
	"strings"
	"unicode"
)

// numberWords are the spelled-out quantities the parsers understand. The
// explicit-quantity signal accepts the full one..ten range.
var numberWords = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
	"ten":   10,
}

// tokenize lowercases text and splits it into alphanumeric runs. Hyphens and
// every other separator break tokens, so "check-in" yields ["check", "in"].
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// nameTokens splits an item name on whitespace and hyphens, keeping only
// tokens longer than minLen.
func nameTokens(name string, minLen int) []string {
	raw := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) > minLen {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// tokenMatches reports whether token equals word, tolerating a trailing
// plural "s".
func tokenMatches(token, word string) bool {
	return token == word || token == word+"s"
}

// containsWholeWord reports whether any token matches word (plural
// tolerated).
func containsWholeWord(tokens []string, word string) bool {
	for _, t := range tokens {
		if tokenMatches(t, word) {
			return true
		}
	}
	return false
}

// mentionsItem reports whether text mentions a menu item: either the full
// name as a substring, or any meaningful name token as a whole word.
func mentionsItem(text string, tokens []string, itemName string, minTokenLen int) bool {
	nameLower := strings.ToLower(itemName)
	if nameLower == "" {
		return false
	}
	if strings.Contains(strings.ToLower(text), nameLower) {
		return true
	}
	for _, nt := range nameTokens(itemName, minTokenLen) {
		if containsWholeWord(tokens, nt) {
			return true
		}
	}
	return false
}

// findQuantity looks for a quantity attached to an item mention, trying in
// order: digit before, digit after, number word before, number word after.
// Both the full item name and its matching tokens anchor the search, so
// "2 pizzas" resolves even when the menu entry is "Margherita Pizza". Falls
// back to the first number word anywhere in the message, then to 1.
func findQuantity(tokens []string, itemName string, minTokenLen int) int {
	anchors := matchPositions(tokens, itemName, minTokenLen)

	// Digit adjacent to the item, an optional "x" between them tolerated.
	for _, pos := range anchors {
		if qty, ok := digitAt(tokens, pos.start-1); ok {
			return qty
		}
		if pos.start >= 2 && tokens[pos.start-1] == "x" {
			if qty, ok := digitAt(tokens, pos.start-2); ok {
				return qty
			}
		}
	}
	for _, pos := range anchors {
		next := pos.end + 1
		if next < len(tokens) && tokens[next] == "x" {
			next++
		}
		if qty, ok := digitAt(tokens, next); ok {
			return qty
		}
	}

	// Number word adjacent to the item.
	for _, pos := range anchors {
		if pos.start > 0 {
			if qty, ok := numberWords[tokens[pos.start-1]]; ok {
				return qty
			}
		}
	}
	for _, pos := range anchors {
		if pos.end+1 < len(tokens) {
			if qty, ok := numberWords[tokens[pos.end+1]]; ok {
				return qty
			}
		}
	}

	// Nothing item-specific: first number word anywhere wins.
	for _, t := range tokens {
		if qty, ok := numberWords[t]; ok {
			return qty
		}
	}
	return 1
}

// span marks an inclusive token range where an item (or one of its tokens)
// matched.
type span struct {
	start, end int
}

// matchPositions returns every place the item's full token sequence or any of
// its meaningful tokens appears, full-name matches first.
func matchPositions(tokens []string, itemName string, minTokenLen int) []span {
	var positions []span

	full := nameTokens(itemName, 0)
	if len(full) > 0 {
		for i := 0; i+len(full) <= len(tokens); i++ {
			matched := true
			for j, w := range full {
				tok := tokens[i+j]
				// Plural tolerated on the final word only.
				if j == len(full)-1 {
					if !tokenMatches(tok, w) {
						matched = false
						break
					}
				} else if tok != w {
					matched = false
					break
				}
			}
			if matched {
				positions = append(positions, span{start: i, end: i + len(full) - 1})
			}
		}
	}

	for _, w := range nameTokens(itemName, minTokenLen) {
		for i, t := range tokens {
			if tokenMatches(t, w) {
				positions = append(positions, span{start: i, end: i})
			}
		}
	}
	return positions
}

func digitAt(tokens []string, i int) (int, bool) {
	if i < 0 || i >= len(tokens) {
		return 0, false
	}
	val, err := strconv.Atoi(tokens[i])
	if err != nil {
		return 0, false
	}
	return val, true
}

// hasExplicitQuantity reports whether the message carries any numeric hint: a
// digit in [1,20] or a spelled-out one..ten. Larger numbers are ignored so a
// room number is not mistaken for a quantity.
func hasExplicitQuantity(tokens []string) bool {
	for _, t := range tokens {
		if _, ok := numberWords[t]; ok {
			return true
		}
		if val, err := strconv.Atoi(t); err == nil && val >= 1 && val <= 20 {
			return true
		}
	}
	return false
}

// coerceQuantity converts an LLM- or user-provided quantity of any shape into
// a safe int in [1,20]. Invalid, zero, or negative inputs become 1; anything
// above 20 clamps to 20.
func coerceQuantity(raw interface{}) int {
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		if v > 20 {
			return 20
		}
		return v
	}

	switch v := raw.(type) {
	case int:
		if v <= 0 {
			return 1
		}
		return clamp(v)
	case int64:
		return coerceQuantity(int(v))
	case float64:
		if v <= 0 {
			return 1
		}
		return clamp(int(v))
	case string:
		cleaned := strings.ToLower(strings.TrimSpace(v))
		if cleaned == "" {
			return 1
		}
		if val, err := strconv.Atoi(cleaned); err == nil {
			if val <= 0 {
				return 1
			}
			return clamp(val)
		}
		if qty, ok := numberWords[cleaned]; ok {
			return qty
		}
		// First digit run inside the string, e.g. "x3".
		if digits := firstDigitRun(cleaned); digits != "" {
			if val, err := strconv.Atoi(digits); err == nil && val > 0 {
				return clamp(val)
			}
		}
		return 1
	default:
		return 1
	}
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
		} else if start != -1 {
			return s[start:i]
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}

// extractRoomNumber parses a room number from free text. A "room <1-4
// digits>" phrase wins; otherwise a single standalone 3-4 digit number is
// taken. Messages with several candidate numbers yield nothing.
func extractRoomNumber(message string) string {
	tokens := tokenize(message)

	for i, t := range tokens {
		if t == "room" && i+1 < len(tokens) {
			if next := tokens[i+1]; isDigits(next) && len(next) >= 1 && len(next) <= 4 {
				return next
			}
		}
		// "room104" arrives as a single token.
		if rest, ok := strings.CutPrefix(t, "room"); ok && isDigits(rest) && len(rest) >= 1 && len(rest) <= 4 {
			return rest
		}
	}

	var candidates []string
	for _, t := range tokens {
		if isDigits(t) && len(t) >= 3 && len(t) <= 4 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
