package ops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/report"
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	SessionID string // empty: the local workspace's session
	HTML      bool   // also render a standalone HTML page next to the source
}

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	SessionID string `json:"session_id"`
	Source    string `json:"source"`              // the markdown document read
	HTMLPath  string `json:"html_path,omitempty"` // written only with HTML set
	Markdown  string `json:"markdown"`
}

// Report returns a session's archive report, falling back to the live
// narrative log for sessions that have not been archived yet. With HTML
// set, a standalone page is written alongside the markdown source.
func Report(rt Runtime, input ReportInput) (*ReportOutput, error) {
	root := rt.Local.Root
	s := rt.Local.ReadSession()

	if input.SessionID != "" {
		globalTier := rt.Global.SessionTier(input.SessionID)
		s = globalTier.ReadSession()
		if s == nil {
			return nil, errors.NewSessionNotFound(input.SessionID)
		}
		root = globalTier.Root
	} else if s == nil {
		return nil, errors.NewNoActiveSession(rt.Local.Root)
	}

	source := ArchivePath(root)
	data, err := os.ReadFile(source)
	if err != nil {
		source = filepath.Join(root, "session_log.md")
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	out := &ReportOutput{
		SessionID: s.SessionID,
		Source:    source,
		Markdown:  string(data),
	}

	if input.HTML {
		html, err := report.RenderHTML(s.Topic, out.Markdown)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		htmlPath := strings.TrimSuffix(source, ".md") + ".html"
		if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
			return nil, errors.NewInternal(err)
		}
		out.HTMLPath = htmlPath
	}

	return out, nil
}
