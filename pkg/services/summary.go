package services

import (
	"fmt"
	"strings"
)

// Status is the outcome of processing one photo
type Status int

const (
	// StatusWritten means a new web copy was encoded
	StatusWritten Status = iota
	// StatusCached means an existing web copy was small enough to keep
	StatusCached
	// StatusSkipped means the photo was left out without being attempted
	StatusSkipped
	// StatusFailed means the photo could not be processed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusCached:
		return "cached"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ItemResult records what happened to one source file
type ItemResult struct {
	Path   string
	Status Status
	Reason string
}

// Summary aggregates a generation run
type Summary struct {
	Items     []ItemResult
	Galleries int
	Pages     int
	Photos    int
}

// Record adds the outcome for path; err, if any, becomes the reason
func (s *Summary) Record(path string, status Status, err error) {
	r := ItemResult{Path: path, Status: status}
	if err != nil {
		r.Reason = err.Error()
	}
	s.Items = append(s.Items, r)
}

// Count returns how many items ended with status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Items {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Problems returns the skipped and failed items
func (s *Summary) Problems() []ItemResult {
	var out []ItemResult
	for _, r := range s.Items {
		if r.Status == StatusSkipped || r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d galleries, %d pages, %d photos; web copies: %d written, %d cached, %d skipped, %d failed",
		s.Galleries, s.Pages, s.Photos,
		s.Count(StatusWritten), s.Count(StatusCached), s.Count(StatusSkipped), s.Count(StatusFailed))
	return b.String()
}
