package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the account identifier under the key "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Tier records the resolved entitlement tier.
func Tier(tier string) slog.Attr {
	return slog.String("tier", tier)
}

// Usage records the free usage counter value.
func Usage(n int64) slog.Attr {
	return slog.Int64("free_usage", n)
}

// Strategy records the generation authentication strategy.
func Strategy(name string) slog.Attr {
	return slog.String("strategy", name)
}

// Attempts records how many generation attempts were made.
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// StatusCode records an upstream or response HTTP status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
