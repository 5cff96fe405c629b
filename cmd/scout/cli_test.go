package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpungsan/scout/internal/config"
	"github.com/hpungsan/scout/internal/ops"
	"github.com/hpungsan/scout/internal/store"
)

// testRuntime builds an ops runtime over temporary tier roots.
func testRuntime(t *testing.T) ops.Runtime {
	t.Helper()
	return ops.Runtime{
		Config: config.DefaultConfig(),
		Local:  store.Tier{Root: filepath.Join(t.TempDir(), "research")},
		Global: store.Global{Base: t.TempDir()},
		Env:    "cli",
	}
}

// runCLI runs the app with args and returns captured stdout. Colored lines
// bypass the capture (the color package binds its writer at init); tests
// assert on the plain lines only.
func runCLI(t *testing.T, rt ops.Runtime, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	app := newCLIApp(rt)
	err := app.Run(append([]string{"scout"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestCLIInit(t *testing.T) {
	rt := testRuntime(t)

	out, err := runCLI(t, rt, "init", "vector", "databases")
	if err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	if !strings.Contains(out, "Topic:       vector databases") {
		t.Errorf("output missing topic line:\n%s", out)
	}
	if !strings.Contains(out, "stars:>500") {
		t.Errorf("output missing viral query:\n%s", out)
	}
	if rt.Local.ReadSession() == nil {
		t.Error("expected a local session document after init")
	}
}

func TestCLIInit_MissingTopic(t *testing.T) {
	rt := testRuntime(t)

	_, err := runCLI(t, rt, "init")
	if err == nil {
		t.Fatal("expected error for missing topic")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST in error, got: %v", err)
	}
}

func TestCLILog(t *testing.T) {
	rt := testRuntime(t)
	if _, err := runCLI(t, rt, "init", "vector", "databases"); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	out, err := runCLI(t, rt, "log", "https://github.com/qdrant/qdrant", "--used", "--relevance=3", "--stars=21000")
	if err != nil {
		t.Fatalf("log command failed: %v", err)
	}
	if !strings.Contains(out, "used [github] qdrant/qdrant") {
		t.Errorf("output missing log line:\n%s", out)
	}

	s := rt.Local.ReadSession()
	sp := rt.Local.ReadScratchpad(s)
	if len(sp.URLsVisited) != 1 {
		t.Fatalf("expected 1 visited URL, got %d", len(sp.URLsVisited))
	}
	if sp.URLsVisited[0].Stars == nil || *sp.URLsVisited[0].Stars != 21000 {
		t.Error("expected stars to be recorded")
	}
	if sp.URLsVisited[0].Relevance != 3 {
		t.Errorf("expected relevance 3, got %d", sp.URLsVisited[0].Relevance)
	}
}

func TestCLILog_NoSession(t *testing.T) {
	rt := testRuntime(t)

	_, err := runCLI(t, rt, "log", "https://example.com")
	if err == nil {
		t.Fatal("expected error without an active session")
	}
	if !strings.Contains(err.Error(), "NO_ACTIVE_SESSION") {
		t.Errorf("expected NO_ACTIVE_SESSION in error, got: %v", err)
	}
}

func TestCLISyncAndArchive(t *testing.T) {
	rt := testRuntime(t)
	if _, err := runCLI(t, rt, "init", "vector", "databases"); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := runCLI(t, rt, "log", "https://github.com/qdrant/qdrant", "--used"); err != nil {
		t.Fatalf("log command failed: %v", err)
	}

	if _, err := runCLI(t, rt, "sync", "push"); err != nil {
		t.Fatalf("sync push failed: %v", err)
	}

	out, err := runCLI(t, rt, "sync", "status")
	if err != nil {
		t.Fatalf("sync status failed: %v", err)
	}
	if !strings.Contains(out, "1 URLs visited") {
		t.Errorf("status missing local summary:\n%s", out)
	}

	out, err = runCLI(t, rt, "archive")
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if !strings.Contains(out, "1 visited, 1 used, 0 skipped") {
		t.Errorf("archive output missing URL stats:\n%s", out)
	}
	if store.ReadBreadcrumb(rt.Local.Root) == "" {
		t.Error("expected a breadcrumb after archive")
	}

	// continue restores the archived session.
	if _, err := runCLI(t, rt, "continue"); err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if rt.Local.ReadSession() == nil {
		t.Error("expected a local session after continue")
	}
}

func TestCLIReport(t *testing.T) {
	rt := testRuntime(t)
	if _, err := runCLI(t, rt, "init", "vector", "databases"); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	out, err := runCLI(t, rt, "report")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "# Research Session: vector databases") {
		t.Errorf("report missing narrative log:\n%s", out)
	}
}

func TestDetectEnvironment(t *testing.T) {
	t.Setenv("VSCODE_PID", "")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("AGENT_WEB_SESSION", "")
	if env := detectEnvironment(); env != "cli" {
		t.Errorf("expected cli, got %s", env)
	}

	t.Setenv("TERM_PROGRAM", "vscode")
	if env := detectEnvironment(); env != "antigravity" {
		t.Errorf("expected antigravity, got %s", env)
	}

	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("AGENT_WEB_SESSION", "1")
	if env := detectEnvironment(); env != "web" {
		t.Errorf("expected web, got %s", env)
	}
}

func TestBaseDir(t *testing.T) {
	t.Setenv("AGENT_CORE", "/custom/core")
	dir, err := baseDir()
	if err != nil {
		t.Fatalf("baseDir failed: %v", err)
	}
	if dir != "/custom/core" {
		t.Errorf("expected /custom/core, got %s", dir)
	}

	t.Setenv("AGENT_CORE", "")
	dir, err = baseDir()
	if err != nil {
		t.Fatalf("baseDir failed: %v", err)
	}
	if !strings.HasSuffix(dir, ".agent-core") {
		t.Errorf("expected ~/.agent-core default, got %s", dir)
	}
}
