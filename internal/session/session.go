package session

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/zeebo/blake3"

	"github.com/hpungsan/scout/internal/config"
)

// Session lifecycle statuses.
const (
	StatusActive   = "active"
	StatusResumed  = "resumed"
	StatusArchived = "archived"
)

// Workflows lists the valid workflow types.
var Workflows = []string{"research", "innovation-scout", "deep-research"}

// Environments lists the known executing environments.
var Environments = []string{"cli", "antigravity", "web"}

// QuerySpec is one pre-built search query string plus a human description.
type QuerySpec struct {
	GitHub      string `json:"github"`
	Arxiv       string `json:"arxiv,omitempty"`
	Description string `json:"description"`
}

// Queries holds the two named search filter specs built at init time.
type Queries struct {
	Viral         QuerySpec `json:"viral"`
	Groundbreaker QuerySpec `json:"groundbreaker"`
}

// Paths holds the computed file locations for a session. They are derived
// from the tier roots and the safe topic, never edited by hand.
type Paths struct {
	Local      string `json:"local"`
	Global     string `json:"global"`
	SessionLog string `json:"session_log"`
	Scratchpad string `json:"scratchpad"`
	Report     string `json:"report"`
	Sources    string `json:"sources"`
}

// Stats holds session counters and sync provenance.
type Stats struct {
	URLsVisited   int    `json:"urls_visited"`
	URLsUsed      int    `json:"urls_used"`
	Checkpoints   int    `json:"checkpoints"`
	LastSync      string `json:"last_sync,omitempty"`
	SyncDirection string `json:"sync_direction,omitempty"`
	SyncEnv       string `json:"sync_env,omitempty"`
}

// Session identifies one research effort. The session_id is generated once
// at creation and never changes; everything else mutates in place as log
// events, syncs, and the archive pipeline run.
type Session struct {
	SessionID       string  `json:"session_id"`
	Topic           string  `json:"topic"`
	SafeTopic       string  `json:"safe_topic"`
	Workflow        string  `json:"workflow"`
	Environment     string  `json:"environment"`
	Started         string  `json:"started"`
	Status          string  `json:"status"`
	ResumedAt       string  `json:"resumed_at,omitempty"`
	ArchivedAt      string  `json:"archived_at,omitempty"`
	DurationMinutes float64 `json:"duration_minutes,omitempty"`
	Queries         Queries `json:"queries"`
	Paths           Paths   `json:"paths"`
	Stats           Stats   `json:"stats"`
}

// ValidWorkflow reports whether w is a known workflow type.
func ValidWorkflow(w string) bool {
	return slices.Contains(Workflows, w)
}

// ValidEnvironment reports whether e is a known environment.
func ValidEnvironment(e string) bool {
	return slices.Contains(Environments, e)
}

// NewID derives a session id from the topic and creation time:
// a 20-char topic slug, the timestamp, and a short content hash of the
// topic to avoid collisions between same-second sessions on similar topics.
func NewID(topic string, now time.Time) string {
	sum := blake3.Sum256([]byte(topic))
	return fmt.Sprintf("%s-%s-%s",
		Slug(topic, 20),
		now.Format("20060102-150405"),
		hex.EncodeToString(sum[:3]))
}

// Slug lowercases topic, maps every non-alphanumeric rune to '-', caps the
// result at max bytes, and trims leading/trailing dashes.
func Slug(topic string, max int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	s := b.String()
	if len(s) > max {
		s = s[:max]
	}
	return strings.Trim(s, "-")
}

// BuildQueries constructs the viral and groundbreaker search query strings
// from the configured thresholds.
func BuildQueries(topic string, cfg *config.Config, now time.Time) Queries {
	viral := cfg.Research.ViralFilter
	ground := cfg.Research.GroundbreakerFilter

	viralCutoff := now.AddDate(0, 0, -viral.RecencyDays).Format("2006-01-02")
	groundCutoff := now.AddDate(0, 0, -ground.RecencyDays).Format("2006-01-02")

	return Queries{
		Viral: QuerySpec{
			GitHub:      fmt.Sprintf("%s stars:>%d pushed:>%s", topic, viral.MinStars, viralCutoff),
			Description: fmt.Sprintf("High-adoption (>%d stars)", viral.MinStars),
		},
		Groundbreaker: QuerySpec{
			GitHub:      fmt.Sprintf("%s stars:%d..%d created:>%s", topic, ground.MinStars, ground.MaxStars, groundCutoff),
			Arxiv:       topic,
			Description: fmt.Sprintf("Novel (%d-%d stars)", ground.MinStars, ground.MaxStars),
		},
	}
}

// ComputePaths derives the full file-set locations for a session rooted at
// localRoot, with globalDir as the session's directory in the global store.
// Paths are recomputed on init, resume, and every log write so that a
// session pulled into a different workspace lands in the right files.
func ComputePaths(localRoot, globalDir, safeTopic string) Paths {
	return Paths{
		Local:      localRoot,
		Global:     globalDir,
		SessionLog: filepath.Join(localRoot, "session_log.md"),
		Scratchpad: filepath.Join(localRoot, "scratchpad.json"),
		Report:     filepath.Join(localRoot, safeTopic+"_report.md"),
		Sources:    filepath.Join(localRoot, safeTopic+"_sources.csv"),
	}
}

// URLStats summarizes a scratchpad's URL counters at archive time.
type URLStats struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Skipped int `json:"skipped"`
}

// CountURLs computes URL statistics from a scratchpad.
func CountURLs(sp *Scratchpad) URLStats {
	return URLStats{
		Total:   len(sp.URLsVisited),
		Used:    len(sp.URLsUsed),
		Skipped: len(sp.URLsSkipped),
	}
}

// Duration returns the elapsed minutes since the session started. An
// unparsable start timestamp yields zero rather than an error; archival
// must not fail over a damaged timestamp.
func (s *Session) Duration(now time.Time) float64 {
	started, err := time.Parse(time.RFC3339, s.Started)
	if err != nil {
		return 0
	}
	return now.Sub(started).Minutes()
}
