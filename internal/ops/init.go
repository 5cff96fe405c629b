package ops

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/logbook"
	"github.com/hpungsan/scout/internal/report"
	"github.com/hpungsan/scout/internal/session"
)

// InitInput contains parameters for the Init operation.
type InitInput struct {
	Topic       string
	Workflow    string // default: "research"
	Environment string // default: the runtime's detected environment
}

// InitOutput contains the result of the Init operation.
type InitOutput struct {
	Session *session.Session `json:"session"`
	Files   []string         `json:"files"`
}

// Init creates a fresh session: a stable id, the pre-built search queries,
// and the full local file-set (narrative log, scratchpad, CSV export,
// session document), with the session document mirrored to the global tier.
func Init(rt Runtime, input InitInput) (*InitOutput, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return nil, errors.NewInvalidRequest("topic is required")
	}

	workflow := input.Workflow
	if workflow == "" {
		workflow = "research"
	}
	if !session.ValidWorkflow(workflow) {
		return nil, errors.NewInvalidRequest("workflow must be one of: " + strings.Join(session.Workflows, ", "))
	}

	env := input.Environment
	if env == "" {
		env = rt.Env
	}
	if !session.ValidEnvironment(env) {
		return nil, errors.NewInvalidRequest("environment must be one of: " + strings.Join(session.Environments, ", "))
	}

	now := time.Now()
	id := session.NewID(topic, now)
	globalTier := rt.Global.SessionTier(id)

	s := &session.Session{
		SessionID:   id,
		Topic:       topic,
		SafeTopic:   session.Slug(topic, 30),
		Workflow:    workflow,
		Environment: env,
		Started:     now.Format(time.RFC3339),
		Status:      session.StatusActive,
		Queries:     session.BuildQueries(topic, rt.Config, now),
	}
	s.Paths = session.ComputePaths(rt.Local.Root, globalTier.Root, s.SafeTopic)

	spJSON, err := json.MarshalIndent(session.NewScratchpad(s), "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	files := map[string]string{
		filepath.Base(s.Paths.SessionLog): report.SessionLog(s),
		filepath.Base(s.Paths.Scratchpad): string(spJSON) + "\n",
		filepath.Base(s.Paths.Sources):    logbook.CSVHeader,
	}
	if err := rt.Local.WriteFiles(files); err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := rt.Local.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := globalTier.WriteSession(s); err != nil {
		return nil, errors.NewInternal(err)
	}

	names := make([]string, 0, len(files)+1)
	for name := range files {
		names = append(names, name)
	}
	names = append(names, "session.json")
	sort.Strings(names)

	return &InitOutput{Session: s, Files: names}, nil
}
