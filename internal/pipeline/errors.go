package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrInput         = errors.New("invalid input")
	ErrConnectivity  = errors.New("download manager unreachable")
	ErrSubmission    = errors.New("submission failed")
	ErrSource        = errors.New("source failed")
	ErrNoJobsAdded   = errors.New("no download jobs were added")
)

// Wrap tags err with marker and a "stage: operation: message" detail so
// callers can classify it with errors.Is.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrSubmission
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind names the failure class of err for reports and API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrConnectivity):
		return "connectivity"
	case errors.Is(err, ErrSource):
		return "source"
	default:
		return "submission"
	}
}

func buildDetail(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "pipeline failure"
	}
	return strings.Join(out, ": ")
}
