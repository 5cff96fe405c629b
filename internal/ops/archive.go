package ops

import (
	"path/filepath"
	"time"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/report"
	"github.com/hpungsan/scout/internal/session"
	"github.com/hpungsan/scout/internal/store"
)

// ArchiveInput contains parameters for the Archive operation.
type ArchiveInput struct {
	SkipExtraction bool // skip the learnings extraction step
	KeepLocal      bool // leave the local workspace in place after archiving
}

// ArchiveOutput contains the result of the Archive operation.
type ArchiveOutput struct {
	SessionID       string             `json:"session_id"`
	GlobalDir       string             `json:"global_dir"`
	Learnings       []session.Learning `json:"learnings,omitempty"`
	URLStats        session.URLStats   `json:"url_stats"`
	DurationMinutes float64            `json:"duration_minutes"`
	KeptLocal       bool               `json:"kept_local"`
}

// Archive closes out the local session: it extracts learnings into the
// global memory, writes the archive report, mirrors the whole workspace
// into the global store, appends the index row, and finally clears the
// workspace down to a breadcrumb. The steps run in a fixed order so that
// a failure partway leaves the durable tier at least as complete as the
// local one.
func Archive(rt Runtime, input ArchiveInput) (*ArchiveOutput, error) {
	s := rt.Local.ReadSession()
	if s == nil {
		return nil, errors.NewNoActiveSession(rt.Local.Root)
	}

	now := time.Now()
	sp := rt.Local.ReadScratchpad(s)
	stats := session.CountURLs(sp)
	durationMin := s.Duration(now)

	var learnings []session.Learning
	if !input.SkipExtraction {
		learnings = session.DeriveLearnings(sp)
		if len(learnings) > 0 {
			section := report.LearningsSection(s, learnings, now)
			if err := store.AppendWithHeader(rt.Global.LearningsPath(), report.LearningsHeader, section); err != nil {
				return nil, errors.NewInternal(err)
			}
		}
	}

	keyFinding := report.KeyFinding(sp, stats)

	s.Status = session.StatusArchived
	s.ArchivedAt = now.Format(time.RFC3339)
	s.DurationMinutes = durationMin
	s.Stats.URLsVisited = stats.Total
	s.Stats.URLsUsed = stats.Used
	s.Stats.Checkpoints = len(sp.Checkpoints)

	globalTier := rt.Global.SessionTier(s.SessionID)
	s.Paths = rt.paths(s)

	archiveDoc := report.ArchiveReport(s, sp, stats, durationMin, now)
	if err := rt.Local.WriteFiles(map[string]string{"session_archive.md": archiveDoc}); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := store.CopyTree(rt.Local.Root, globalTier.Root); err != nil {
		return nil, errors.NewInternal(err)
	}

	row := report.IndexRow(s, stats, durationMin, keyFinding, now)
	if err := store.AppendWithHeader(rt.Global.IndexPath(), report.IndexHeader, row); err != nil {
		return nil, errors.NewInternal(err)
	}

	if !input.KeepLocal {
		if err := store.ClearTree(rt.Local.Root, s.SessionID); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	return &ArchiveOutput{
		SessionID:       s.SessionID,
		GlobalDir:       globalTier.Root,
		Learnings:       learnings,
		URLStats:        stats,
		DurationMinutes: durationMin,
		KeptLocal:       input.KeepLocal,
	}, nil
}

// ArchivePath returns the archive report location within a tier root.
func ArchivePath(root string) string {
	return filepath.Join(root, "session_archive.md")
}
