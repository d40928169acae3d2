package mcp

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/logging"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"markdown", "richtext", "text", "codelang", "limits", "block", "draft"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"markdown_convert": {
		def:     convertToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConvert },
	},
	"markdown_validate": {
		def:     validateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleValidate },
	},
	"markdown_batch": {
		def:     batchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBatch },
	},
	"richtext_build": {
		def:     richTextToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRichText },
	},
	"text_chunk": {
		def:     chunkToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChunk },
	},
	"codelang_check": {
		def:     languageCheckToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLanguageCheck },
	},
	"codelang_list": {
		def:     languageListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLanguageList },
	},
	"limits_list": {
		def:     limitsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLimits },
	},
	"block_link_to_page": {
		def:     linkToPageToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLinkToPage },
	},
	"block_synced_reference": {
		def:     syncedReferenceToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSyncedReference },
	},
	"draft_save": {
		def:     saveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave },
	},
	"draft_fetch": {
		def:     fetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch },
	},
	"draft_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"draft_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
}

// AllToolNames returns every valid tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "draft_save" → "draft").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		if typeSet[GetTypeForTool(name)] {
			tools = append(tools, name)
		}
	}
	sort.Strings(tools)
	return tools
}

// NewServer creates a new MCP server with Scribe tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration. Unknown names are logged and ignored.
func NewServer(db *sql.DB, cfg *config.Config, logger hclog.Logger, version string) *server.MCPServer {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.Named("mcp")

	if unknown := ValidateDisabledTypes(cfg.DisabledTypes); len(unknown) > 0 {
		logger.Warn("ignoring unknown disabled types", "types", unknown)
	}
	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("ignoring unknown disabled tools", "tools", unknown)
	}

	s := server.NewMCPServer(
		"scribe",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg, logger)

	// Types expand first, then individual tools are added on top.
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	registered := 0
	for _, name := range AllToolNames() {
		if disabled[name] {
			continue
		}
		s.AddTool(toolRegistry[name].def, toolRegistry[name].handler(h))
		registered++
	}
	logger.Debug("registered tools", "count", registered, "disabled", len(toolRegistry)-registered)

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, logger hclog.Logger, version string) error {
	s := NewServer(db, cfg, logger, version)
	return server.ServeStdio(s)
}
