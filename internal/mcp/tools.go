package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Shared convert parameters.
var (
	languageParam = mcp.WithString("language",
		mcp.Description("Default code block language (tag or alias). Overrides config default_language."),
	)
	strictParam = mcp.WithBoolean("strict",
		mcp.Description("Fail on fenced code blocks with an unsupported language instead of using the default."),
	)
	markdownParam = mcp.WithString("markdown",
		mcp.Description("Markdown source to convert"),
		mcp.Required(),
	)
)

// Address parameters shared by the draft tools.
var (
	idParam        = mcp.WithString("id", mcp.Description("Draft ID (use instead of workspace+name)"))
	workspaceParam = mcp.WithString("workspace", mcp.Description("Workspace (default: \"default\")"))
	nameParam      = mcp.WithString("name", mcp.Description("Draft name, unique per workspace"))
)

var convertToolDef = mcp.NewTool("markdown_convert",
	mcp.WithDescription("Convert markdown into a block array ready for an append-children request body."),
	markdownParam,
	languageParam,
	strictParam,
)

var validateToolDef = mcp.NewTool("markdown_validate",
	mcp.WithDescription("Convert markdown and report every request-limit violation of the resulting payload."),
	markdownParam,
	languageParam,
	strictParam,
)

var batchToolDef = mcp.NewTool("markdown_batch",
	mcp.WithDescription("Convert markdown and split it into ordered append-children requests that each fit the request limits."),
	markdownParam,
	mcp.WithNumber("max_children", mcp.Description("Top-level blocks per request (default: config max_blocks_per_request, max 100)")),
	languageParam,
	strictParam,
)

var richTextToolDef = mcp.NewTool("richtext_build",
	mcp.WithDescription("Build rich-text runs from text, chunked to the per-run content limit."),
	mcp.WithString("content", mcp.Description("Text or equation expression"), mcp.Required()),
	mcp.WithBoolean("equation", mcp.Description("Build equation runs instead of text runs")),
	mcp.WithBoolean("bold", mcp.Description("Bold")),
	mcp.WithBoolean("italic", mcp.Description("Italic")),
	mcp.WithBoolean("strikethrough", mcp.Description("Strikethrough")),
	mcp.WithBoolean("underline", mcp.Description("Underline")),
	mcp.WithBoolean("code", mcp.Description("Inline code")),
	mcp.WithString("color", mcp.Description("Color such as red or blue_background")),
	mcp.WithString("link", mcp.Description("URL to link every text run to")),
)

var chunkToolDef = mcp.NewTool("text_chunk",
	mcp.WithDescription("Split text into pieces of at most size characters."),
	mcp.WithString("text", mcp.Description("Text to split"), mcp.Required()),
	mcp.WithNumber("size", mcp.Description("Maximum characters per piece (default: 2000)")),
)

var languageCheckToolDef = mcp.NewTool("codelang_check",
	mcp.WithDescription("Check whether a code block language tag or alias is supported."),
	mcp.WithString("language", mcp.Description("Language tag or alias"), mcp.Required()),
)

var languageListToolDef = mcp.NewTool("codelang_list",
	mcp.WithDescription("List every supported code block language tag."),
)

var limitsToolDef = mcp.NewTool("limits_list",
	mcp.WithDescription("List the request size limits enforced by the document API."),
)

var linkToPageToolDef = mcp.NewTool("block_link_to_page",
	mcp.WithDescription("Build a link_to_page block for a page or database."),
	mcp.WithString("id", mcp.Description("Page or database UUID, dashed or not"), mcp.Required()),
	mcp.WithString("target", mcp.Description("page_id (default) or database_id")),
)

var syncedReferenceToolDef = mcp.NewTool("block_synced_reference",
	mcp.WithDescription("Build a synced_block that references an existing original synced block."),
	mcp.WithString("block_id", mcp.Description("UUID of the original synced block"), mcp.Required()),
)

var saveToolDef = mcp.NewTool("draft_save",
	mcp.WithDescription("Convert markdown and save the payload as a local draft."),
	markdownParam,
	workspaceParam,
	nameParam,
	mcp.WithString("title", mcp.Description("Human-readable title (default: name)")),
	mcp.WithString("mode", mcp.Description("error (default) fails on name collision, replace overwrites")),
	languageParam,
	strictParam,
)

var fetchToolDef = mcp.NewTool("draft_fetch",
	mcp.WithDescription("Fetch a saved draft with its payload, by id or by workspace+name."),
	idParam,
	workspaceParam,
	nameParam,
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted drafts")),
	mcp.WithBoolean("include_source", mcp.Description("Include the markdown source (default: true)")),
)

var listToolDef = mcp.NewTool("draft_list",
	mcp.WithDescription("List draft summaries in a workspace, newest first."),
	workspaceParam,
	mcp.WithNumber("limit", mcp.Description("Page size (default: 20, max: 100)")),
	mcp.WithNumber("offset", mcp.Description("Page offset (default: 0)")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted drafts")),
)

var deleteToolDef = mcp.NewTool("draft_delete",
	mcp.WithDescription("Soft-delete a draft by id or by workspace+name."),
	idParam,
	workspaceParam,
	nameParam,
)
