package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/ops"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/limits"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db     *sql.DB
	cfg    *config.Config
	logger hclog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, logger hclog.Logger) *Handlers {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handlers{db: db, cfg: cfg, logger: logger}
}

// Request types for each tool

// ConvertRequest represents the arguments for markdown_convert and markdown_validate.
type ConvertRequest struct {
	Markdown string `json:"markdown"`
	Language string `json:"language,omitempty"`
	Strict   bool   `json:"strict,omitempty"`
}

func (r ConvertRequest) options() ops.ConvertOptions {
	return ops.ConvertOptions{Language: r.Language, Strict: r.Strict}
}

// BatchRequest represents the arguments for markdown_batch.
type BatchRequest struct {
	ConvertRequest
	MaxChildren int `json:"max_children,omitempty"`
}

// RichTextRequest represents the arguments for richtext_build.
type RichTextRequest struct {
	Content       string `json:"content"`
	Equation      bool   `json:"equation,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
	Link          string `json:"link,omitempty"`
}

// ChunkRequest represents the arguments for text_chunk.
type ChunkRequest struct {
	Text string `json:"text"`
	Size int    `json:"size,omitempty"`
}

// LanguageRequest represents the arguments for codelang_check.
type LanguageRequest struct {
	Language string `json:"language"`
}

// LinkToPageRequest represents the arguments for block_link_to_page.
type LinkToPageRequest struct {
	ID     string `json:"id"`
	Target string `json:"target,omitempty"`
}

// SyncedReferenceRequest represents the arguments for block_synced_reference.
type SyncedReferenceRequest struct {
	BlockID string `json:"block_id"`
}

// SaveRequest represents the arguments for draft_save.
type SaveRequest struct {
	ConvertRequest
	Workspace string  `json:"workspace,omitempty"`
	Name      *string `json:"name,omitempty"`
	Title     *string `json:"title,omitempty"`
	Mode      string  `json:"mode,omitempty"`
}

// FetchRequest represents the arguments for draft_fetch.
type FetchRequest struct {
	ID             string `json:"id,omitempty"`
	Workspace      string `json:"workspace,omitempty"`
	Name           string `json:"name,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	IncludeSource  *bool  `json:"include_source,omitempty"`
}

// ListRequest represents the arguments for draft_list.
type ListRequest struct {
	Workspace      string `json:"workspace,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// DeleteRequest represents the arguments for draft_delete.
type DeleteRequest struct {
	ID        string `json:"id,omitempty"`
	Workspace string `json:"workspace,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Handler implementations

// HandleConvert handles the markdown_convert tool call.
func (h *Handlers) HandleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConvertRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Convert(h.cfg, ops.ConvertInput{
		Markdown:       input.Markdown,
		ConvertOptions: input.options(),
	})
	if err != nil {
		return h.fail("markdown_convert", err), nil
	}

	return successResult(result)
}

// HandleValidate handles the markdown_validate tool call.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConvertRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ValidatePayload(h.cfg, ops.ValidateInput{
		Markdown:       input.Markdown,
		ConvertOptions: input.options(),
	})
	if err != nil {
		return h.fail("markdown_validate", err), nil
	}

	return successResult(result)
}

// HandleBatch handles the markdown_batch tool call.
func (h *Handlers) HandleBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BatchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.BatchPayload(h.cfg, ops.BatchInput{
		Markdown:       input.Markdown,
		MaxChildren:    input.MaxChildren,
		ConvertOptions: input.options(),
	})
	if err != nil {
		return h.fail("markdown_batch", err), nil
	}

	return successResult(result)
}

// HandleRichText handles the richtext_build tool call.
func (h *Handlers) HandleRichText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RichTextRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	runs, err := ops.BuildRichText(ops.RichTextInput(input))
	if err != nil {
		return h.fail("richtext_build", err), nil
	}

	return successResult(map[string]any{"rich_text": runs, "count": len(runs)})
}

// HandleChunk handles the text_chunk tool call.
func (h *Handlers) HandleChunk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChunkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	size := input.Size
	if size == 0 {
		size = limits.RichTextContent
	}
	if size < 0 {
		return errorResult(errors.NewInvalidRequest("size must be positive")), nil
	}

	result, err := ops.Chunk(input.Text, size)
	if err != nil {
		return h.fail("text_chunk", err), nil
	}

	return successResult(result)
}

// HandleLanguageCheck handles the codelang_check tool call.
func (h *Handlers) HandleLanguageCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LanguageRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Language == "" {
		return errorResult(errors.NewInvalidRequest("language is required")), nil
	}

	return successResult(ops.CheckLanguage(input.Language))
}

// HandleLanguageList handles the codelang_list tool call.
func (h *Handlers) HandleLanguageList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	langs := ops.ListLanguages()
	return successResult(map[string]any{"languages": langs, "count": len(langs)})
}

// HandleLimits handles the limits_list tool call.
func (h *Handlers) HandleLimits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"limits": ops.ListLimits()})
}

// HandleLinkToPage handles the block_link_to_page tool call.
func (h *Handlers) HandleLinkToPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LinkToPageRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	block, err := ops.LinkToPage(input.Target, input.ID)
	if err != nil {
		return h.fail("block_link_to_page", err), nil
	}

	return successResult(map[string]any{"block": block})
}

// HandleSyncedReference handles the block_synced_reference tool call.
func (h *Handlers) HandleSyncedReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SyncedReferenceRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	block, err := ops.SyncedReference(input.BlockID)
	if err != nil {
		return h.fail("block_synced_reference", err), nil
	}

	return successResult(map[string]any{"block": block})
}

// HandleSave handles the draft_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveDraft(ctx, h.db, h.cfg, ops.SaveDraftInput{
		Workspace:      input.Workspace,
		Name:           input.Name,
		Title:          input.Title,
		Markdown:       input.Markdown,
		Mode:           ops.SaveMode(input.Mode),
		ConvertOptions: input.options(),
	})
	if err != nil {
		return h.fail("draft_save", err), nil
	}

	return successResult(result)
}

// HandleFetch handles the draft_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FetchDraft(ctx, h.db, ops.FetchDraftInput{
		ID:             input.ID,
		Workspace:      input.Workspace,
		Name:           input.Name,
		IncludeDeleted: input.IncludeDeleted,
		IncludeSource:  input.IncludeSource,
	})
	if err != nil {
		return h.fail("draft_fetch", err), nil
	}

	return successResult(result)
}

// HandleList handles the draft_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListDrafts(ctx, h.db, ops.ListDraftsInput{
		Workspace:      input.Workspace,
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return h.fail("draft_list", err), nil
	}

	return successResult(result)
}

// HandleDelete handles the draft_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteDraft(ctx, h.db, ops.DeleteDraftInput{
		ID:        input.ID,
		Workspace: input.Workspace,
		Name:      input.Name,
	})
	if err != nil {
		return h.fail("draft_delete", err), nil
	}

	return successResult(result)
}

// fail logs internal errors and converts err to a tool error result.
func (h *Handlers) fail(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, errors.ErrInternal) {
		h.logger.Error("tool failed", "tool", tool, "error", err)
	}
	return errorResult(err)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var sErr *errors.ScribeError
	if stderrors.As(err, &sErr) {
		// Keep wrapper context such as "items[2]: ..." when present.
		msg := sErr.Message
		if err != error(sErr) {
			msg = err.Error()
		}
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": msg,
			"status":  sErr.Status,
		}
		// Internal errors can carry file paths or SQL text.
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
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
