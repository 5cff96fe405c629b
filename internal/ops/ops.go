// Package ops implements the session engine operations: init, resume,
// list, log, sync (status/push/pull), report, and archive. Each operation
// is a short, synchronous read-mutate-write pass over the two storage
// tiers; there is no in-process state between calls.
package ops

import (
	"github.com/hpungsan/scout/internal/config"
	"github.com/hpungsan/scout/internal/session"
	"github.com/hpungsan/scout/internal/store"
)

// DefaultListLimit caps session listings when no limit is given.
const DefaultListLimit = 10

// Runtime carries the explicit configuration every operation needs: the
// filter thresholds, the two tier roots, and the executing environment.
// Nothing in this package reads environment variables or process-global
// paths; the caller resolves those once and injects them here.
type Runtime struct {
	Config *config.Config
	Local  store.Tier   // ephemeral workspace tier (.agent/research)
	Global store.Global // durable store (~/.agent-core)
	Env    string       // executing environment: cli | antigravity | web
}

// paths recomputes the session's file locations against this runtime's
// roots. Stored paths may describe another machine after a pull; the
// engine always writes relative to its own local root.
func (rt Runtime) paths(s *session.Session) session.Paths {
	return session.ComputePaths(rt.Local.Root, rt.Global.SessionTier(s.SessionID).Root, s.SafeTopic)
}
