package ops

import (
	"time"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/logbook"
	"github.com/hpungsan/scout/internal/session"
)

// LogInput contains parameters for the LogURL operation.
type LogInput struct {
	URL       string
	Source    string // empty: auto-detected from the URL
	Name      string // empty: extracted from the URL
	Used      bool
	Skipped   bool
	Relevance int // 0-3
	Notes     string
	Filter    string // viral | groundbreaker | ""
	Stars     *int
}

// LogOutput contains the result of the LogURL operation.
type LogOutput struct {
	Entry  session.LogEntry `json:"entry"`
	Status string           `json:"status"` // used | skipped | logged
	Stats  session.URLStats `json:"stats"`
}

// LogURL records one visited URL across all three representations: the
// narrative table row, the canonical scratchpad entry, and the CSV record.
// The scratchpad write is the one that counts; the narrative and CSV
// projections tolerate their files being absent.
func LogURL(rt Runtime, input LogInput) (*LogOutput, error) {
	if input.URL == "" {
		return nil, errors.NewInvalidRequest("url is required")
	}
	if input.Relevance < 0 || input.Relevance > 3 {
		return nil, errors.NewInvalidRequest("relevance must be between 0 and 3")
	}
	if input.Used && input.Skipped {
		return nil, errors.NewInvalidRequest("a URL cannot be both used and skipped")
	}

	s := rt.Local.ReadSession()
	if s == nil {
		return nil, errors.NewNoActiveSession(rt.Local.Root)
	}
	s.Paths = rt.paths(s)

	source := input.Source
	if source == "" {
		source = session.DetectSource(input.URL)
	}
	name := input.Name
	if name == "" {
		name = session.ExtractName(input.URL, source)
	}

	id, err := session.NewEntryID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	entry := session.LogEntry{
		ID:        id,
		URL:       input.URL,
		Source:    source,
		Name:      name,
		Timestamp: time.Now().Format(time.RFC3339),
		Used:      input.Used,
		Skipped:   input.Skipped,
		Relevance: input.Relevance,
		Notes:     input.Notes,
		Filter:    input.Filter,
		Stars:     input.Stars,
	}

	if err := logbook.AppendNarrative(s.Paths.SessionLog, entry); err != nil {
		return nil, errors.NewInternal(err)
	}

	sp := rt.Local.ReadScratchpad(s)
	session.ApplyLogEvent(sp, entry)
	if err := rt.Local.WriteScratchpad(sp); err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := logbook.AppendCSV(s.Paths.Sources, entry); err != nil {
		return nil, errors.NewInternal(err)
	}

	stats := session.CountURLs(sp)
	s.Stats.URLsVisited = stats.Total
	s.Stats.URLsUsed = stats.Used
	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	status := "logged"
	if entry.Used {
		status = "used"
	} else if entry.Skipped {
		status = "skipped"
	}

	return &LogOutput{Entry: entry, Status: status, Stats: stats}, nil
}
