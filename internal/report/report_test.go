package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/scout/internal/session"
)

func testSession() *session.Session {
	return &session.Session{
		SessionID:   "vector-dbs-20250601-120000-a1b2c3",
		Topic:       "vector databases",
		SafeTopic:   "vector-databases",
		Workflow:    "research",
		Environment: "cli",
		Started:     "2025-06-01T12:00:00Z",
		Status:      session.StatusActive,
		Queries: session.Queries{
			Viral:         session.QuerySpec{GitHub: "vector databases stars:>500", Description: "High-adoption (>500 stars)"},
			Groundbreaker: session.QuerySpec{GitHub: "vector databases stars:10..200", Arxiv: "vector databases", Description: "Novel (10-200 stars)"},
		},
	}
}

func TestSessionLog_ContainsTableHead(t *testing.T) {
	log := SessionLog(testSession())

	require.Contains(t, log, "# Research Session: vector databases")
	require.Contains(t, log, "| Time | Source | URL | Used | Relevance | Notes |")
	require.Contains(t, log, "|------|--------|-----|------|-----------|-------|")
	require.Contains(t, log, "vector databases stars:>500")
	require.Contains(t, log, "### Groundbreaker Filter (Novel/Emerging)")
}

func TestArchiveReport_ZeroURLs(t *testing.T) {
	s := testSession()
	sp := session.NewScratchpad(s)
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	out := ArchiveReport(s, sp, session.CountURLs(sp), 60, now)

	require.Contains(t, out, "# Session Archive: vector databases")
	require.Contains(t, out, "| Total URLs visited | 0 |")
	require.Contains(t, out, "_No URLs marked as used_")
	require.Contains(t, out, "_No URLs logged_")
	require.Contains(t, out, "scout continue vector-dbs-20250601-120000-a1b2c3")
}

func TestArchiveReport_ListsURLs(t *testing.T) {
	s := testSession()
	sp := session.NewScratchpad(s)
	session.ApplyLogEvent(sp, session.LogEntry{
		URL: "https://a", Source: "github", Used: true, Notes: "good", Timestamp: "2025-06-01T12:30:00Z",
	})
	session.ApplyLogEvent(sp, session.LogEntry{
		URL: "https://b", Source: "web", Skipped: true, Timestamp: "2025-06-01T12:31:00Z",
	})
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	out := ArchiveReport(s, sp, session.CountURLs(sp), 60, now)

	require.Contains(t, out, "- https://a\n")
	require.Contains(t, out, "- [github] https://a — good")
	require.Contains(t, out, "- [web] https://b")
	require.Contains(t, out, "| URLs used in output | 1 |")
	require.Contains(t, out, "| URLs skipped | 1 |")
}

func TestLearningsSection(t *testing.T) {
	s := testSession()
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	learnings := []session.Learning{
		{Type: "tool", Name: "toolX", URL: "https://x", Insight: "High-adoption: fast"},
		{Type: "paper", Name: "No Link Paper", Insight: "Research finding"},
	}

	out := LearningsSection(s, learnings, now)

	require.Contains(t, out, "## 2025-06-01 — vector databases")
	require.Contains(t, out, "Session: `vector-dbs-20250601-120000-a1b2c3`")
	require.Contains(t, out, "- **Tool**: [toolX](https://x) — High-adoption: fast")
	require.Contains(t, out, "- **Paper**: No Link Paper — Research finding")
	require.True(t, strings.HasSuffix(out, "\n---\n"))
}

func TestIndexRow(t *testing.T) {
	s := testSession()
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	stats := session.URLStats{Total: 12, Used: 5, Skipped: 2}

	row := IndexRow(s, stats, 47.6, "toolX", now)

	require.Equal(t, "| 2025-06-01 | vector-dbs-20250601-12000... | vector databases | research | 48m | 5/12 | toolX |\n", row)
}

func TestKeyFinding(t *testing.T) {
	sp := session.NewScratchpad(testSession())

	// Placeholder when nothing is there.
	require.Equal(t, "See report", KeyFinding(sp, session.URLStats{}))

	// Used-count summary.
	require.Equal(t, "5 URLs used", KeyFinding(sp, session.URLStats{Used: 5}))

	// First viral candidate wins.
	sp.ViralCandidates = []map[string]any{{"name": "toolX"}}
	require.Equal(t, "toolX", KeyFinding(sp, session.URLStats{Used: 5}))
}

func TestTruncate(t *testing.T) {
	fifty := strings.Repeat("x", 50)

	got := Truncate(fifty, 40)
	require.Len(t, got, 40)
	require.Equal(t, strings.Repeat("x", 37)+"...", got)

	require.Equal(t, "short", Truncate("short", 40))
	require.Equal(t, strings.Repeat("x", 40), Truncate(strings.Repeat("x", 40), 40))
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("Archive", "# Heading\n\nsome *text*\n")
	require.NoError(t, err)

	require.Contains(t, html, "<title>Archive</title>")
	require.Contains(t, html, "<h1>Heading</h1>")
	require.Contains(t, html, "<em>text</em>")
}
