package shell

import (
	"strconv"
	"strings"
)

// Kind is the category of an input line.
type Kind int

const (
	KindEmpty Kind = iota
	KindExit
	KindHistory
	KindReplay
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindExit:
		return "exit"
	case KindHistory:
		return "history"
	case KindReplay:
		return "replay"
	case KindExternal:
		return "external"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

const replayPrefix = "!"

// Classify decides how tokens are handled.
func Classify(tokens []string) Kind {
	switch {
	case len(tokens) == 0:
		return KindEmpty
	case tokens[0] == "exit":
		return KindExit
	case tokens[0] == "history":
		return KindHistory
	case isReplay(tokens[0]):
		return KindReplay
	default:
		return KindExternal
	}
}

// isReplay matches "!" followed by one or more decimal digits.
func isReplay(token string) bool {
	digits := strings.TrimPrefix(token, replayPrefix)
	if len(digits) == len(token) || digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// replayID parses the identifier from a replay token. ok is false if the
// number doesn't fit, no record can have such an identifier.
func replayID(token string) (id uint, ok bool) {
	n, err := strconv.ParseUint(strings.TrimPrefix(token, replayPrefix), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// shouldRecord reports whether a line with these tokens goes into history.
// Anything starting with ! is left out, valid replay or not.
func shouldRecord(tokens []string) bool {
	return len(tokens) > 0 && !strings.HasPrefix(tokens[0], replayPrefix)
}
