package ops

import (
	"time"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/session"
	"github.com/hpungsan/scout/internal/store"
)

// ResumeInput contains parameters for the Resume operation.
type ResumeInput struct {
	SessionID string // empty: breadcrumb, then most recent global session
}

// ResumeOutput contains the result of the Resume operation.
type ResumeOutput struct {
	Session *session.Session `json:"session"`
}

// Resume restores a session from the global store into the local workspace
// and marks it resumed. With no id, the local breadcrumb left by the last
// archive wins; failing that, the most recently touched global session.
func Resume(rt Runtime, input ResumeInput) (*ResumeOutput, error) {
	id := input.SessionID
	if id == "" {
		id = store.ReadBreadcrumb(rt.Local.Root)
	}
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

	s.Status = session.StatusResumed
	s.ResumedAt = time.Now().Format(time.RFC3339)
	s.Environment = rt.Env
	s.Paths = rt.paths(s)

	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ResumeOutput{Session: s}, nil
}
