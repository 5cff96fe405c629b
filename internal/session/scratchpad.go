package session

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// LogEntry is one observation of a URL. Narrative table rows and CSV records
// are projections of this record; the scratchpad copy is canonical.
type LogEntry struct {
	ID        string `json:"id,omitempty"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Used      bool   `json:"used"`
	Skipped   bool   `json:"skipped"`
	Relevance int    `json:"relevance"`
	Notes     string `json:"notes"`
	Filter    string `json:"filter,omitempty"`
	Stars     *int   `json:"stars,omitempty"`
}

// NewEntryID generates a ULID for a log entry.
func NewEntryID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Scratchpad is the mutable research state attached to a session. The
// candidate and checkpoint sequences are written by the surrounding agent
// and are opaque here except for learning extraction.
type Scratchpad struct {
	SessionID   string `json:"session_id"`
	Topic       string `json:"topic"`
	Workflow    string `json:"workflow"`
	Environment string `json:"environment"`
	Started     string `json:"started"`

	ViralCandidates         []map[string]any `json:"viral_candidates"`
	GroundbreakerCandidates []map[string]any `json:"groundbreaker_candidates"`
	ArxivPapers             []map[string]any `json:"arxiv_papers"`

	URLsVisited []LogEntry `json:"urls_visited"`
	URLsUsed    []string   `json:"urls_used"`
	URLsSkipped []string   `json:"urls_skipped"`

	Findings       []map[string]any `json:"findings"`
	Checkpoints    []map[string]any `json:"checkpoints"`
	LastCheckpoint any              `json:"last_checkpoint"`
	LastUpdated    string           `json:"last_updated"`

	// Extra preserves keys written by newer or foreign tooling so that a
	// load/store round trip never drops them.
	Extra map[string]json.RawMessage `json:"-"`
}

// scratchpadKeys lists every key this build owns. Anything else found in a
// document is carried through Extra untouched.
var scratchpadKeys = []string{
	"session_id", "topic", "workflow", "environment", "started",
	"viral_candidates", "groundbreaker_candidates", "arxiv_papers",
	"urls_visited", "urls_used", "urls_skipped",
	"findings", "checkpoints", "last_checkpoint", "last_updated",
}

// scratchpadAlias avoids recursion in the custom JSON methods.
type scratchpadAlias Scratchpad

// UnmarshalJSON decodes the known schema and stashes unknown keys in Extra.
func (s *Scratchpad) UnmarshalJSON(data []byte) error {
	var alias scratchpadAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range scratchpadKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*s = Scratchpad(alias)
	return nil
}

// MarshalJSON emits the known schema merged with any preserved extra keys.
func (s Scratchpad) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(scratchpadAlias(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range s.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// NewScratchpad creates an empty scratchpad carrying the session's identity.
func NewScratchpad(s *Session) *Scratchpad {
	sp := &Scratchpad{
		SessionID:   s.SessionID,
		Topic:       s.Topic,
		Workflow:    s.Workflow,
		Environment: s.Environment,
		Started:     s.Started,
		LastUpdated: s.Started,
	}
	sp.EnsureDefaults()
	return sp
}

// EnsureDefaults fills every absent sequence with its empty default so the
// document is schema-complete after any load. Documents written before a
// schema addition heal here instead of erroring. Idempotent.
func (s *Scratchpad) EnsureDefaults() {
	if s.ViralCandidates == nil {
		s.ViralCandidates = []map[string]any{}
	}
	if s.GroundbreakerCandidates == nil {
		s.GroundbreakerCandidates = []map[string]any{}
	}
	if s.ArxivPapers == nil {
		s.ArxivPapers = []map[string]any{}
	}
	if s.URLsVisited == nil {
		s.URLsVisited = []LogEntry{}
	}
	if s.URLsUsed == nil {
		s.URLsUsed = []string{}
	}
	if s.URLsSkipped == nil {
		s.URLsSkipped = []string{}
	}
	if s.Findings == nil {
		s.Findings = []map[string]any{}
	}
	if s.Checkpoints == nil {
		s.Checkpoints = []map[string]any{}
	}
}

// ApplyLogEvent appends entry to urls_visited and derives urls_used /
// urls_skipped membership from the entry's flags. This is the only way a
// URL ever enters the used/skipped sets, which keeps them subsets of
// urls_visited by construction. Pure in-memory mutation; persistence is the
// caller's job.
func ApplyLogEvent(s *Scratchpad, entry LogEntry) {
	s.URLsVisited = append(s.URLsVisited, entry)
	if entry.Used {
		s.URLsUsed = append(s.URLsUsed, entry.URL)
	} else if entry.Skipped {
		s.URLsSkipped = append(s.URLsSkipped, entry.URL)
	}
	s.LastUpdated = entry.Timestamp
}
