package analysis

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBackoff is used when a rate-limit error carries no
	// parseable wait suggestion.
	DefaultBackoff = 10 * time.Second

	// MaxBackoff caps any provider-suggested wait.
	MaxBackoff = 60 * time.Second
)

// retryInPattern matches the "retry in <seconds>" phrasing provider
// quota errors embed in their message text.
var retryInPattern = regexp.MustCompile(`retry in (\d+(?:\.\d+)?)`)

// BackoffFor determines how long to wait before retrying after a
// rate-limit error. A structured WaitHint on the error wins; otherwise
// the message text is scanned for a suggested wait. Either way the
// result is capped at MaxBackoff, and an absent suggestion yields
// DefaultBackoff.
func BackoffFor(err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		if rl.WaitHint > 0 {
			return capBackoff(rl.WaitHint)
		}
		if d, ok := parseRetryIn(rl.Message); ok {
			return capBackoff(d)
		}
		return DefaultBackoff
	}

	if err != nil {
		if d, ok := parseRetryIn(err.Error()); ok {
			return capBackoff(d)
		}
	}
	return DefaultBackoff
}

func parseRetryIn(msg string) (time.Duration, bool) {
	match := retryInPattern.FindStringSubmatch(strings.ToLower(msg))
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func capBackoff(d time.Duration) time.Duration {
	if d > MaxBackoff {
		return MaxBackoff
	}
	return d
}
