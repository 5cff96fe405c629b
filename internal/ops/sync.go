package ops

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/session"
	"github.com/hpungsan/scout/internal/store"
)

// SyncOutput contains the result of a Push or Pull operation.
type SyncOutput struct {
	Session   *session.Session `json:"session"`
	Direction string           `json:"direction"` // push | pull
}

// Push mirrors the local workspace into the session's global directory and
// stamps sync provenance in both tiers. The local tier stays in place; push
// is a backup, not a hand-off.
func Push(rt Runtime) (*SyncOutput, error) {
	s := rt.Local.ReadSession()
	if s == nil {
		return nil, errors.NewNoActiveSession(rt.Local.Root)
	}

	globalTier := rt.Global.SessionTier(s.SessionID)
	if err := store.CopyTree(rt.Local.Root, globalTier.Root); err != nil {
		return nil, errors.NewInternal(err)
	}

	stampSync(s, "push", rt.Env)
	s.Paths = rt.paths(s)
	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := globalTier.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &SyncOutput{Session: s, Direction: "push"}, nil
}

// PullInput contains parameters for the Pull operation.
type PullInput struct {
	SessionID string // empty: most recent global session
}

// Pull overwrites the local workspace with a session's global directory.
// Local files not present globally survive; the copy is additive.
func Pull(rt Runtime, input PullInput) (*SyncOutput, error) {
	id := input.SessionID
	if id == "" {
		recent := rt.Global.MostRecent()
		if recent == nil {
			return nil, errors.NewSessionNotFound("(none)")
		}
		id = recent.Session.SessionID
	}

	globalTier := rt.Global.SessionTier(id)
	s := globalTier.ReadSession()
	if s == nil {
		return nil, errors.NewSessionNotFound(id)
	}

	if err := store.CopyTree(globalTier.Root, rt.Local.Root); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Provenance is stamped locally only; the global copy keeps recording
	// the last push.
	stampSync(s, "pull", rt.Env)
	s.Paths = rt.paths(s)
	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &SyncOutput{Session: s, Direction: "pull"}, nil
}

func stampSync(s *session.Session, direction, env string) {
	s.Stats.LastSync = time.Now().Format(time.RFC3339)
	s.Stats.SyncDirection = direction
	s.Stats.SyncEnv = env
}

// LocalStatus describes the session currently occupying the local workspace.
type LocalStatus struct {
	SessionID     string `json:"session_id"`
	Topic         string `json:"topic"`
	Status        string `json:"status"`
	URLsVisited   int    `json:"urls_visited"`
	LastSync      string `json:"last_sync,omitempty"`
	SyncDirection string `json:"sync_direction,omitempty"`
}

// MemoryFile is one document in the global memory directory.
type MemoryFile struct {
	Name  string `json:"name"`
	Lines int    `json:"lines"`
}

// StatusOutput describes both tiers for the sync status view.
type StatusOutput struct {
	Environment   string           `json:"environment"`
	Local         *LocalStatus     `json:"local,omitempty"`
	Recent        []SessionSummary `json:"recent"`
	TotalSessions int              `json:"total_sessions"`
	Memory        []MemoryFile     `json:"memory,omitempty"`
}

// Status reports the environment, the local workspace's session if any,
// the most recent global sessions, and the memory documents. It never
// errors on an empty store; empty is a valid status.
func Status(rt Runtime) (*StatusOutput, error) {
	out := &StatusOutput{Environment: rt.Env}

	if s := rt.Local.ReadSession(); s != nil {
		sp := rt.Local.ReadScratchpad(s)
		out.Local = &LocalStatus{
			SessionID:     s.SessionID,
			Topic:         s.Topic,
			Status:        s.Status,
			URLsVisited:   len(sp.URLsVisited),
			LastSync:      s.Stats.LastSync,
			SyncDirection: s.Stats.SyncDirection,
		}
	}

	all := rt.Global.ListSessions(0)
	out.TotalSessions = len(all)
	limit := 5
	if len(all) < limit {
		limit = len(all)
	}
	for _, info := range all[:limit] {
		out.Recent = append(out.Recent, summarize(info.Session))
	}

	if entries, err := os.ReadDir(rt.Global.MemoryDir()); err == nil {
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
				continue
			}
			lines := 0
			if data, err := os.ReadFile(filepath.Join(rt.Global.MemoryDir(), entry.Name())); err == nil {
				lines = strings.Count(string(data), "\n")
			}
			out.Memory = append(out.Memory, MemoryFile{Name: entry.Name(), Lines: lines})
		}
	}

	return out, nil
}
