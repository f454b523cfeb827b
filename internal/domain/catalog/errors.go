package catalog

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCountry = errors.New("invalid country code")
	ErrMissingTerm    = errors.New("search term is required")
	ErrMissingAppID   = errors.New("app id is required")
)

// Kind classifies marketplace failures independently of their message text.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindExhausted means the requested page is past the end of the feed.
	KindExhausted
	KindNotFound
	KindUpstream
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindExhausted:
		return "exhausted"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by Marketplace implementations.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var exhaustedHints = []string{"no more reviews", "page not found", "invalid page"}

// IsExhausted reports whether err means "no further pages". Typed errors are
// checked first; message matching remains for wrapped errors from code that
// does not produce an *Error.
func IsExhausted(err error) bool {
	if err == nil {
		return false
	}
	if KindOf(err) == KindExhausted {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, h := range exhaustedHints {
		if strings.Contains(msg, h) {
			return true
		}
	}
	return false
}
