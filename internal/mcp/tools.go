package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Parameter names mirror the ops input fields; defaults
// are applied by the operations, not here.

var initToolDef = mcp.NewTool("session_init",
	mcp.WithDescription("Start a new research session for a topic. Creates the local workspace files and mirrors the session to the global store."),
	mcp.WithString("topic", mcp.Required(), mcp.Description("Research topic, e.g. 'vector databases'")),
	mcp.WithString("workflow", mcp.Description("Workflow type: research | innovation-scout | deep-research (default: research)")),
	mcp.WithString("environment", mcp.Description("Override the detected environment: cli | antigravity | web")),
)

var continueToolDef = mcp.NewTool("session_continue",
	mcp.WithDescription("Resume a session from the global store into the local workspace. Without an id, the last archived session (breadcrumb) or the most recent global session is used."),
	mcp.WithString("session_id", mcp.Description("Session id to resume")),
)

var listToolDef = mcp.NewTool("session_list",
	mcp.WithDescription("List sessions in the global store, most recently touched first."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return (default: 10)")),
)

var logURLToolDef = mcp.NewTool("session_log_url",
	mcp.WithDescription("Record a visited URL in the active session. Writes the narrative table row, the canonical scratchpad entry, and the CSV record."),
	mcp.WithString("url", mcp.Required(), mcp.Description("The URL that was visited")),
	mcp.WithString("source", mcp.Description("Source tag (auto-detected from the URL when omitted)")),
	mcp.WithString("name", mcp.Description("Display name (extracted from the URL when omitted)")),
	mcp.WithBoolean("used", mcp.Description("The URL was used in the final output")),
	mcp.WithBoolean("skipped", mcp.Description("The URL was visited but skipped")),
	mcp.WithNumber("relevance", mcp.Description("Relevance score 0-3")),
	mcp.WithString("notes", mcp.Description("Free-form notes")),
	mcp.WithString("filter", mcp.Description("Matching filter: viral | groundbreaker")),
	mcp.WithNumber("stars", mcp.Description("Repository star count, if applicable")),
)

var statusToolDef = mcp.NewTool("session_status",
	mcp.WithDescription("Show both storage tiers: the local workspace session, recent global sessions, and memory documents."),
)

var pushToolDef = mcp.NewTool("session_push",
	mcp.WithDescription("Mirror the local workspace into the session's global directory."),
)

var pullToolDef = mcp.NewTool("session_pull",
	mcp.WithDescription("Overwrite the local workspace from a session's global directory. Without an id, the most recent global session is used."),
	mcp.WithString("session_id", mcp.Description("Session id to pull")),
)

var archiveToolDef = mcp.NewTool("session_archive",
	mcp.WithDescription("Close out the active session: extract learnings into global memory, write the archive report, mirror the workspace globally, append the index row, and clear the workspace to a breadcrumb."),
	mcp.WithBoolean("skip_extraction", mcp.Description("Skip learnings extraction")),
	mcp.WithBoolean("keep_local", mcp.Description("Leave the local workspace in place")),
)

var reportToolDef = mcp.NewTool("session_report",
	mcp.WithDescription("Return a session's archive report, or the live narrative log for unarchived sessions."),
	mcp.WithString("session_id", mcp.Description("Session id (default: the local workspace's session)")),
	mcp.WithBoolean("html", mcp.Description("Also render a standalone HTML page next to the markdown source")),
)
