package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	rt ops.Runtime
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(rt ops.Runtime) *Handlers {
	return &Handlers{rt: rt}
}

// Request types for each tool

// InitRequest represents the arguments for session_init.
type InitRequest struct {
	Topic       string `json:"topic"`
	Workflow    string `json:"workflow,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// ContinueRequest represents the arguments for session_continue.
type ContinueRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// ListRequest represents the arguments for session_list.
type ListRequest struct {
	Limit int `json:"limit,omitempty"`
}

// LogURLRequest represents the arguments for session_log_url.
type LogURLRequest struct {
	URL       string `json:"url"`
	Source    string `json:"source,omitempty"`
	Name      string `json:"name,omitempty"`
	Used      bool   `json:"used,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Relevance int    `json:"relevance,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Filter    string `json:"filter,omitempty"`
	Stars     *int   `json:"stars,omitempty"`
}

// PullRequest represents the arguments for session_pull.
type PullRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// ArchiveRequest represents the arguments for session_archive.
type ArchiveRequest struct {
	SkipExtraction bool `json:"skip_extraction,omitempty"`
	KeepLocal      bool `json:"keep_local,omitempty"`
}

// ReportRequest represents the arguments for session_report.
type ReportRequest struct {
	SessionID string `json:"session_id,omitempty"`
	HTML      bool   `json:"html,omitempty"`
}

// Handler implementations

// HandleInit handles the session_init tool call.
func (h *Handlers) HandleInit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[InitRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Init(h.rt, ops.InitInput{
		Topic:       input.Topic,
		Workflow:    input.Workflow,
		Environment: input.Environment,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleContinue handles the session_continue tool call.
func (h *Handlers) HandleContinue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ContinueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Resume(h.rt, ops.ResumeInput{SessionID: input.SessionID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the session_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.rt, ops.ListInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleLogURL handles the session_log_url tool call.
func (h *Handlers) HandleLogURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogURLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogURL(h.rt, ops.LogInput{
		URL:       input.URL,
		Source:    input.Source,
		Name:      input.Name,
		Used:      input.Used,
		Skipped:   input.Skipped,
		Relevance: input.Relevance,
		Notes:     input.Notes,
		Filter:    input.Filter,
		Stars:     input.Stars,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStatus handles the session_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Status(h.rt)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePush handles the session_push tool call.
func (h *Handlers) HandlePush(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Push(h.rt)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePull handles the session_pull tool call.
func (h *Handlers) HandlePull(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PullRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Pull(h.rt, ops.PullInput{SessionID: input.SessionID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleArchive handles the session_archive tool call.
func (h *Handlers) HandleArchive(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ArchiveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Archive(h.rt, ops.ArchiveInput{
		SkipExtraction: input.SkipExtraction,
		KeepLocal:      input.KeepLocal,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleReport handles the session_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Report(h.rt, ops.ReportInput{
		SessionID: input.SessionID,
		HTML:      input.HTML,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.ScoutError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
