package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/scout/internal/session"
)

// Fixed file names within a tier root.
const (
	SessionFile    = "session.json"
	ScratchpadFile = "scratchpad.json"
	BreadcrumbFile = ".last_session"
)

// Tier is one storage root holding a session's file-set: either the local
// workspace (.agent/research) or a session's directory in the global store.
// Every operation is scoped to the root; nothing outside it is touched.
type Tier struct {
	Root string
}

// SessionPath returns the session document location in this tier.
func (t Tier) SessionPath() string {
	return filepath.Join(t.Root, SessionFile)
}

// ScratchpadPath returns the scratchpad document location in this tier.
func (t Tier) ScratchpadPath() string {
	return filepath.Join(t.Root, ScratchpadFile)
}

// ReadSession loads the session document from this tier. An absent or
// malformed document reads as nil; the caller decides whether that is a
// reportable condition.
func (t Tier) ReadSession() *session.Session {
	data, err := os.ReadFile(t.SessionPath())
	if err != nil {
		return nil
	}
	s := &session.Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil
	}
	return s
}

// WriteSession persists the session document as an indented, human-diffable
// whole-document rewrite, creating the tier root if absent.
func (t Tier) WriteSession(s *session.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return t.writeFile(SessionFile, append(data, '\n'))
}

// ReadScratchpad loads the scratchpad document and runs schema defaulting.
// An absent or malformed document yields a fresh, defaulted scratchpad
// carrying the session's identity; never an error.
func (t Tier) ReadScratchpad(s *session.Session) *session.Scratchpad {
	data, err := os.ReadFile(t.ScratchpadPath())
	if err != nil {
		return session.NewScratchpad(s)
	}
	sp := &session.Scratchpad{}
	if err := json.Unmarshal(data, sp); err != nil {
		return session.NewScratchpad(s)
	}
	sp.EnsureDefaults()
	return sp
}

// WriteScratchpad persists the scratchpad as a whole-document rewrite.
func (t Tier) WriteScratchpad(sp *session.Scratchpad) error {
	data, err := json.MarshalIndent(sp, "", "  ")
	if err != nil {
		return err
	}
	return t.writeFile(ScratchpadFile, append(data, '\n'))
}

// WriteFiles writes a named set of documents into the tier root, creating
// the root if absent.
func (t Tier) WriteFiles(files map[string]string) error {
	for name, content := range files {
		if err := t.writeFile(name, []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

func (t Tier) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(t.Root, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(t.Root, name), data, 0644)
}

// CopyTree copies every file and directory from src into dst, creating dst
// if absent. Same-named files are overwritten; same-named subdirectories
// are removed and replaced rather than merged. Push, pull, and the archive
// mirror all use this one primitive.
func CopyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.RemoveAll(dstPath); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ClearTree deletes every entry under root, leaves the root directory
// itself in place, and writes a breadcrumb file recording the session id
// that last occupied it.
func ClearTree(root, lastSessionID string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(root, BreadcrumbFile), []byte(lastSessionID+"\n"), 0644)
}

// ReadBreadcrumb returns the session id recorded by the last ClearTree, or
// empty if none exists.
func ReadBreadcrumb(root string) string {
	data, err := os.ReadFile(filepath.Join(root, BreadcrumbFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
