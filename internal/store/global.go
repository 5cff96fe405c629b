package store

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hpungsan/scout/internal/session"
)

// Global is the durable, shared store of all sessions, rooted at a
// configurable base directory (AGENT_CORE or ~/.agent-core by default —
// resolved by the caller, never read from the environment here).
type Global struct {
	Base string
}

// SessionsDir returns the directory holding one subdirectory per session.
func (g Global) SessionsDir() string {
	return filepath.Join(g.Base, "sessions")
}

// SessionTier returns the tier rooted at a session's global directory.
func (g Global) SessionTier(id string) Tier {
	return Tier{Root: filepath.Join(g.SessionsDir(), id)}
}

// IndexPath returns the append-only session index document.
func (g Global) IndexPath() string {
	return filepath.Join(g.SessionsDir(), "index.md")
}

// MemoryDir returns the cross-session memory directory.
func (g Global) MemoryDir() string {
	return filepath.Join(g.Base, "memory")
}

// LearningsPath returns the append-only learnings memory document.
func (g Global) LearningsPath() string {
	return filepath.Join(g.MemoryDir(), "learnings.md")
}

// Info pairs a loaded session with its global directory and modification
// time, for listing and most-recent selection.
type Info struct {
	Session *session.Session
	Dir     string
	ModTime time.Time
}

// ListSessions returns up to limit sessions from the global store, most
// recently modified first. Directories without a parseable session
// document are skipped, not errors.
func (g Global) ListSessions(limit int) []Info {
	entries, err := os.ReadDir(g.SessionsDir())
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(g.SessionsDir(), entry.Name())
		s := (Tier{Root: dir}).ReadSession()
		if s == nil {
			continue
		}
		modTime := time.Time{}
		if fi, err := entry.Info(); err == nil {
			modTime = fi.ModTime()
		}
		infos = append(infos, Info{Session: s, Dir: dir, ModTime: modTime})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ModTime.After(infos[j].ModTime)
	})

	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos
}

// MostRecent returns the most recently modified global session, or nil.
func (g Global) MostRecent() *Info {
	infos := g.ListSessions(1)
	if len(infos) == 0 {
		return nil
	}
	return &infos[0]
}

// AppendWithHeader appends entry to an append-only document, first creating
// it with the given header if absent. Used for the session index and the
// learnings memory. Appends are deliberately not deduplicated: the index
// and memory are logs, not tables.
func AppendWithHeader(path, header, entry string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(header), 0644); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
