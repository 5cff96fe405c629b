// Package logbook keeps the three representations of the URL log — the
// narrative markdown table, the scratchpad document, and the CSV export —
// consistent with each other. The scratchpad is canonical; the narrative
// row and CSV record are pure projections of one LogEntry.
package logbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hpungsan/scout/internal/session"
)

// CSVHeader is the first line of a session's sources export.
const CSVHeader = "name,url,source,filter,stars,date,relevance,used,notes\n"

// NarrativeRow renders the markdown table row for one log entry.
func NarrativeRow(e session.LogEntry) string {
	mark := "—"
	if e.Used {
		mark = "✓"
	} else if e.Skipped {
		mark = "✗"
	}
	return fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
		clockTime(e.Timestamp), e.Source, e.URL, mark,
		session.RelevanceStars(e.Relevance), e.Notes)
}

// CSVRecord renders the CSV fields for one log entry. Quoting is left to
// encoding/csv, which applies RFC 4180 rules (fields containing the
// separator, quotes, or newlines are wrapped in doubled-quote form).
func CSVRecord(e session.LogEntry) []string {
	stars := ""
	if e.Stars != nil {
		stars = strconv.Itoa(*e.Stars)
	}
	used := "no"
	if e.Used {
		used = "yes"
	}
	return []string{
		e.Name, e.URL, e.Source, e.Filter, stars,
		datePart(e.Timestamp), strconv.Itoa(e.Relevance), used, e.Notes,
	}
}

// AppendNarrative inserts the entry's row into the narrative log's URL
// table, immediately after the header/separator pair, so the newest rows
// accumulate directly beneath the table head. A missing narrative document
// is a no-op, not an error.
func AppendNarrative(path string, e session.LogEntry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "|---") && i > 0 && strings.Contains(lines[i-1], "Source") {
			lines = append(lines[:i+1], append([]string{NarrativeRow(e)}, lines[i+1:]...)...)
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
		}
	}

	// No URL table found; leave the document untouched.
	return nil
}

// AppendCSV appends one record to the tabular export. A missing export
// file is a no-op, not an error.
func AppendCSV(path string, e session.LogEntry) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVRecord(e)); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// clockTime extracts the HH:MM portion of an RFC 3339 timestamp, falling
// back to the raw value when it does not parse.
func clockTime(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("15:04")
}

// datePart extracts the date portion of an RFC 3339 timestamp.
func datePart(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return parsed.Format("2006-01-02")
}
