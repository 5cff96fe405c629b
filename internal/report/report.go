// Package report renders the human-facing documents: the initial session
// log, the archive report, the learnings memory sections, and the session
// index rows. Everything here is a pure string transform; callers persist.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/scout/internal/session"
)

// IndexHeader starts the global session index document.
const IndexHeader = "# Session Index\n\n" +
	"| Date | Session ID | Topic | Workflow | Duration | URLs | Key Finding |\n" +
	"|------|------------|-------|----------|----------|------|-------------|\n"

// LearningsHeader starts the global learnings memory document.
const LearningsHeader = "# Research Learnings\n\nAuto-extracted from archived sessions.\n\n---\n\n"

// SessionLog renders the initial narrative log for a fresh session,
// including the URL table head that AppendNarrative targets.
func SessionLog(s *session.Session) string {
	return fmt.Sprintf(`# Research Session: %s

**Session ID:** `+"`%s`"+`
**Workflow:** %s
**Environment:** %s
**Started:** %s
**Status:** %s

---

## Search Queries

### Viral Filter (High Adoption)
`+"```"+`
%s
`+"```"+`
%s

### Groundbreaker Filter (Novel/Emerging)
`+"```"+`
%s
`+"```"+`
%s

---

## URLs Visited

> Log ALL URLs here - even if not used in final output

| Time | Source | URL | Used | Relevance | Notes |
|------|--------|-----|------|-----------|-------|

---

## Key Findings

### Viral Candidates

_High-adoption frameworks..._

### Groundbreaker Candidates

_Novel/emerging frameworks..._

### arXiv Papers

_Recent research..._

---

## Checkpoints

| Time | URLs Visited | Findings | Notes |
|------|--------------|----------|-------|

---

## Session Notes

_Free-form notes during research..._

`,
		s.Topic, s.SessionID, s.Workflow, s.Environment, s.Started, s.Status,
		s.Queries.Viral.GitHub, s.Queries.Viral.Description,
		s.Queries.Groundbreaker.GitHub, s.Queries.Groundbreaker.Description)
}

// ArchiveReport renders the full archive document for a finished session.
func ArchiveReport(s *session.Session, sp *session.Scratchpad, stats session.URLStats, durationMin float64, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `# Session Archive: %s

## Metadata

| Field | Value |
|-------|-------|
| Session ID | `+"`%s`"+` |
| Workflow | %s |
| Environment | %s |
| Started | %s |
| Archived | %s |
| Duration | %.1f minutes |

---

## URL Statistics

| Metric | Count |
|--------|-------|
| Total URLs visited | %d |
| URLs used in output | %d |
| URLs skipped | %d |

---

## Search Queries Used

### Viral Filter
`+"```"+`
%s
`+"```"+`

### Groundbreaker Filter
`+"```"+`
%s
`+"```"+`

---

## Complete URL Log

### URLs Used

`,
		s.Topic, s.SessionID, s.Workflow, s.Environment, s.Started,
		now.Format(time.RFC3339), durationMin,
		stats.Total, stats.Used, stats.Skipped,
		s.Queries.Viral.GitHub, s.Queries.Groundbreaker.GitHub)

	if len(sp.URLsUsed) == 0 {
		b.WriteString("_No URLs marked as used_\n")
	}
	for _, url := range sp.URLsUsed {
		fmt.Fprintf(&b, "- %s\n", url)
	}

	b.WriteString("\n### All URLs Visited\n\n")

	if len(sp.URLsVisited) == 0 {
		b.WriteString("_No URLs logged_\n")
	}
	for _, entry := range sp.URLsVisited {
		fmt.Fprintf(&b, "- [%s] %s", entry.Source, entry.URL)
		if entry.Notes != "" {
			fmt.Fprintf(&b, " — %s", entry.Notes)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `

---

## To Continue This Research

`+"```bash"+`
scout continue %s
`+"```"+`

---

*Archived: %s*
`, s.SessionID, now.Format("2006-01-02 15:04"))

	return b.String()
}

// LearningsSection renders one dated memory section for a session's
// derived learnings.
func LearningsSection(s *session.Session, learnings []session.Learning, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n## %s — %s\n", now.Format("2006-01-02"), s.Topic)
	fmt.Fprintf(&b, "Session: `%s`\n\n", s.SessionID)

	for _, l := range learnings {
		if l.URL != "" {
			fmt.Fprintf(&b, "- **%s**: [%s](%s) — %s\n", titleCase(l.Type), l.Name, l.URL, l.Insight)
		} else {
			fmt.Fprintf(&b, "- **%s**: %s — %s\n", titleCase(l.Type), l.Name, l.Insight)
		}
	}

	b.WriteString("\n---\n")
	return b.String()
}

// IndexRow renders one append-only line for the global session index.
func IndexRow(s *session.Session, stats session.URLStats, durationMin float64, keyFinding string, now time.Time) string {
	id := s.SessionID
	if len(id) > 25 {
		id = id[:25]
	}
	topic := s.Topic
	if len(topic) > 20 {
		topic = topic[:20]
	}

	return fmt.Sprintf("| %s | %s... | %s | %s | %.0fm | %d/%d | %s |\n",
		now.Format("2006-01-02"), id, topic, s.Workflow,
		durationMin, stats.Used, stats.Total, Truncate(keyFinding, 40))
}

// KeyFinding picks the one-line summary for the index: the first viral
// candidate's name, else a used-count summary, else a placeholder.
func KeyFinding(sp *session.Scratchpad, stats session.URLStats) string {
	if len(sp.ViralCandidates) > 0 {
		if name, ok := sp.ViralCandidates[0]["name"].(string); ok && name != "" {
			return name
		}
		return "See report"
	}
	if stats.Used > 0 {
		return fmt.Sprintf("%d URLs used", stats.Used)
	}
	return "See report"
}

// Truncate caps s at max bytes, replacing the tail with "..." when it is
// longer (a 50-char finding becomes 37 chars + "...", total 40).
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// titleCase uppercases the first letter of a learning type for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
