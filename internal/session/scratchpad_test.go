package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		SessionID:   "vector-dbs-20250601-120000-a1b2c3",
		Topic:       "vector databases",
		SafeTopic:   "vector-databases",
		Workflow:    "research",
		Environment: "cli",
		Started:     "2025-06-01T12:00:00Z",
		Status:      StatusActive,
	}
}

func TestNewScratchpad_SchemaComplete(t *testing.T) {
	sp := NewScratchpad(testSession())

	data, err := json.Marshal(sp)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range scratchpadKeys {
		require.Contains(t, doc, key, "scratchpad document missing %q", key)
	}

	// Sequences serialize as empty arrays, not null.
	require.Equal(t, []any{}, doc["urls_visited"])
	require.Equal(t, []any{}, doc["viral_candidates"])
}

func TestEnsureDefaults_HealsLegacyDocument(t *testing.T) {
	// A document written before urls_skipped and checkpoints existed.
	legacy := []byte(`{
		"session_id": "old-session",
		"topic": "old topic",
		"urls_visited": [{"url": "https://a", "source": "web", "name": "a", "timestamp": "t", "used": false, "skipped": false, "relevance": 1, "notes": ""}],
		"urls_used": []
	}`)

	var sp Scratchpad
	require.NoError(t, json.Unmarshal(legacy, &sp))
	sp.EnsureDefaults()

	require.NotNil(t, sp.URLsSkipped)
	require.NotNil(t, sp.Checkpoints)
	require.NotNil(t, sp.ViralCandidates)
	require.Len(t, sp.URLsVisited, 1)
}

func TestEnsureDefaults_Idempotent(t *testing.T) {
	sp := NewScratchpad(testSession())
	ApplyLogEvent(sp, LogEntry{URL: "https://a", Used: true, Timestamp: "2025-06-01T12:05:00Z"})

	before, err := json.Marshal(sp)
	require.NoError(t, err)

	sp.EnsureDefaults()

	after, err := json.Marshal(sp)
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))
}

func TestUnmarshal_PreservesUnknownKeys(t *testing.T) {
	doc := []byte(`{
		"session_id": "s1",
		"urls_visited": [],
		"experimental_scores": {"alpha": 0.9},
		"plugin_notes": ["a", "b"]
	}`)

	var sp Scratchpad
	require.NoError(t, json.Unmarshal(doc, &sp))
	sp.EnsureDefaults()

	out, err := json.Marshal(&sp)
	require.NoError(t, err)

	var round map[string]any
	require.NoError(t, json.Unmarshal(out, &round))
	require.Contains(t, round, "experimental_scores")
	require.Contains(t, round, "plugin_notes")
	require.Equal(t, "s1", round["session_id"])
}

func TestApplyLogEvent_UsedAndSkippedSets(t *testing.T) {
	tests := []struct {
		name        string
		used        bool
		skipped     bool
		wantUsed    int
		wantSkipped int
	}{
		{"used", true, false, 1, 0},
		{"skipped", false, true, 0, 1},
		{"logged only", false, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewScratchpad(testSession())
			entry := LogEntry{
				URL:       "https://example.com",
				Used:      tt.used,
				Skipped:   tt.skipped,
				Timestamp: "2025-06-01T12:10:00Z",
			}

			ApplyLogEvent(sp, entry)

			require.Len(t, sp.URLsVisited, 1)
			require.Len(t, sp.URLsUsed, tt.wantUsed)
			require.Len(t, sp.URLsSkipped, tt.wantSkipped)
			require.Equal(t, "2025-06-01T12:10:00Z", sp.LastUpdated)
		})
	}
}

func TestApplyLogEvent_MembershipFollowsVisited(t *testing.T) {
	sp := NewScratchpad(testSession())

	ApplyLogEvent(sp, LogEntry{URL: "https://a", Used: true, Timestamp: "t1"})
	ApplyLogEvent(sp, LogEntry{URL: "https://b", Skipped: true, Timestamp: "t2"})
	ApplyLogEvent(sp, LogEntry{URL: "https://c", Timestamp: "t3"})

	visited := make(map[string]bool)
	for _, e := range sp.URLsVisited {
		visited[e.URL] = true
	}
	for _, u := range sp.URLsUsed {
		require.True(t, visited[u], "urls_used entry %q not in urls_visited", u)
	}
	for _, u := range sp.URLsSkipped {
		require.True(t, visited[u], "urls_skipped entry %q not in urls_visited", u)
	}
}

func TestNewEntryID(t *testing.T) {
	a, err := NewEntryID()
	require.NoError(t, err)
	b, err := NewEntryID()
	require.NoError(t, err)

	require.Len(t, a, 26)
	require.NotEqual(t, a, b)
}
