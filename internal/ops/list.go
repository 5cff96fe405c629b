package ops

import "github.com/hpungsan/scout/internal/session"

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit int // 0: DefaultListLimit
}

// SessionSummary is one row of a session listing.
type SessionSummary struct {
	SessionID   string `json:"session_id"`
	Topic       string `json:"topic"`
	Workflow    string `json:"workflow"`
	Status      string `json:"status"`
	Started     string `json:"started"`
	URLsVisited int    `json:"urls_visited"`
	URLsUsed    int    `json:"urls_used"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Sessions []SessionSummary `json:"sessions"`
	Total    int              `json:"total"`
}

// List returns the global store's sessions, most recently touched first.
func List(rt Runtime, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	all := rt.Global.ListSessions(0)
	infos := all
	if len(infos) > limit {
		infos = infos[:limit]
	}

	summaries := make([]SessionSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, summarize(info.Session))
	}

	return &ListOutput{Sessions: summaries, Total: len(all)}, nil
}

func summarize(s *session.Session) SessionSummary {
	return SessionSummary{
		SessionID:   s.SessionID,
		Topic:       s.Topic,
		Workflow:    s.Workflow,
		Status:      s.Status,
		Started:     s.Started,
		URLsVisited: s.Stats.URLsVisited,
		URLsUsed:    s.Stats.URLsUsed,
	}
}
