package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/ops"
	"github.com/hpungsan/scribe/pkg/errors"
	"github.com/hpungsan/scribe/pkg/limits"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := &cli.App{
		Name:    "scribe",
		Usage:   "Build block payloads for the document API from markdown",
		Version: Version,
		Reader:  os.Stdin,
		Writer:  os.Stdout,
		Commands: []*cli.Command{
			convertCmd(db, cfg),
			validateCmd(cfg),
			chunkCmd(),
			richTextCmd(),
			langCmd(),
			limitsCmd(),
			linkCmd(),
			refCmd(),
			draftsCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// formatFlag selects the output encoding of a command.
func formatFlag() cli.Flag {
	return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "Output format: json|yaml"}
}

// convertFlags are shared by the commands that run the markdown converter.
func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Default code block language (overrides config)"},
		&cli.BoolFlag{Name: "strict", Usage: "Fail on unsupported fence languages"},
	}
}

func convertOptions(c *cli.Context) ops.ConvertOptions {
	return ops.ConvertOptions{Language: c.String("language"), Strict: c.Bool("strict")}
}

// convertCmd creates the convert command.
func convertCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert markdown from stdin into an append-children payload",
		Flags: append(convertFlags(),
			&cli.BoolFlag{Name: "batch", Aliases: []string{"b"}, Usage: "Split into requests that each fit the request limits"},
			&cli.IntFlag{Name: "max-children", Usage: "Top-level blocks per request when batching (default: config)"},
			&cli.BoolFlag{Name: "save", Aliases: []string{"s"}, Usage: "Save the payload as a draft"},
			&cli.StringFlag{Name: "workspace", Aliases: []string{"w"}, Value: "default", Usage: "Draft workspace (with --save)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Draft name (with --save)"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Draft title (with --save, defaults to name)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Name collision mode with --save: error|replace"},
			formatFlag(),
		),
		Action: func(c *cli.Context) error {
			markdown, err := readInput(c, "markdown")
			if err != nil {
				return outputError(err)
			}

			if c.Bool("save") {
				if c.Bool("batch") {
					return outputError(errors.NewInvalidRequest("--save and --batch cannot be combined"))
				}
				if db == nil {
					return outputError(errors.NewInternal(stderrors.New("draft store is not available")))
				}
				input := ops.SaveDraftInput{
					Workspace:      c.String("workspace"),
					Markdown:       markdown,
					Mode:           ops.SaveMode(c.String("mode")),
					ConvertOptions: convertOptions(c),
				}
				if name := c.String("name"); name != "" {
					input.Name = &name
				}
				if title := c.String("title"); title != "" {
					input.Title = &title
				}
				out, err := ops.SaveDraft(c.Context, db, cfg, input)
				if err != nil {
					return outputError(err)
				}
				return output(c, out)
			}

			if c.Bool("batch") {
				out, err := ops.BatchPayload(cfg, ops.BatchInput{
					Markdown:       markdown,
					MaxChildren:    c.Int("max-children"),
					ConvertOptions: convertOptions(c),
				})
				if err != nil {
					return outputError(err)
				}
				return output(c, out)
			}

			out, err := ops.Convert(cfg, ops.ConvertInput{Markdown: markdown, ConvertOptions: convertOptions(c)})
			if err != nil {
				return outputError(err)
			}
			return output(c, out)
		},
	}
}

// validateCmd creates the validate command.
func validateCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Convert markdown from stdin and check the payload against the request limits",
		Flags: append(convertFlags(), formatFlag()),
		Action: func(c *cli.Context) error {
			markdown, err := readInput(c, "markdown")
			if err != nil {
				return outputError(err)
			}

			out, err := ops.ValidatePayload(cfg, ops.ValidateInput{Markdown: markdown, ConvertOptions: convertOptions(c)})
			if err != nil {
				return outputError(err)
			}
			if err := output(c, out); err != nil {
				return err
			}
			if !out.Valid {
				return cli.Exit(fmt.Sprintf("[%s] payload violates %d request limit(s)", errors.ErrLimitExceeded, len(out.Violations)), 1)
			}
			return nil
		},
	}
}

// chunkCmd creates the chunk command.
func chunkCmd() *cli.Command {
	return &cli.Command{
		Name:  "chunk",
		Usage: "Split text from stdin into pieces of at most --size characters",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Value: limits.RichTextContent, Usage: "Maximum characters per piece"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			text, err := readInput(c, "text")
			if err != nil {
				return outputError(err)
			}
			if c.Int("size") <= 0 {
				return outputError(errors.NewInvalidRequest("--size must be positive"))
			}

			out, err := ops.Chunk(text, c.Int("size"))
			if err != nil {
				return outputError(err)
			}
			return output(c, out)
		},
	}
}

// richTextCmd creates the richtext command.
func richTextCmd() *cli.Command {
	return &cli.Command{
		Name:      "richtext",
		Usage:     "Build rich-text runs from an argument or stdin",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "equation", Aliases: []string{"e"}, Usage: "Build equation runs"},
			&cli.BoolFlag{Name: "bold", Usage: "Bold"},
			&cli.BoolFlag{Name: "italic", Usage: "Italic"},
			&cli.BoolFlag{Name: "strikethrough", Usage: "Strikethrough"},
			&cli.BoolFlag{Name: "underline", Usage: "Underline"},
			&cli.BoolFlag{Name: "code", Usage: "Inline code"},
			&cli.StringFlag{Name: "color", Aliases: []string{"c"}, Usage: "Color, e.g. red or blue_background"},
			&cli.StringFlag{Name: "link", Usage: "Link URL"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			content := strings.Join(c.Args().Slice(), " ")
			if content == "" {
				var err error
				if content, err = readInput(c, "content"); err != nil {
					return outputError(err)
				}
			}

			runs, err := ops.BuildRichText(ops.RichTextInput{
				Content:       content,
				Equation:      c.Bool("equation"),
				Bold:          c.Bool("bold"),
				Italic:        c.Bool("italic"),
				Strikethrough: c.Bool("strikethrough"),
				Underline:     c.Bool("underline"),
				Code:          c.Bool("code"),
				Color:         c.String("color"),
				Link:          c.String("link"),
			})
			if err != nil {
				return outputError(err)
			}
			return output(c, runs)
		},
	}
}

// langCmd creates the lang command.
func langCmd() *cli.Command {
	return &cli.Command{
		Name:      "lang",
		Usage:     "Check a code block language, or list all supported languages",
		ArgsUsage: "[language]",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return output(c, ops.ListLanguages())
			}

			out := ops.CheckLanguage(c.Args().First())
			if err := output(c, out); err != nil {
				return err
			}
			if !out.Supported {
				return outputError(errors.NewUnknownLanguage(out.Input))
			}
			return nil
		},
	}
}

// limitsCmd creates the limits command.
func limitsCmd() *cli.Command {
	return &cli.Command{
		Name:  "limits",
		Usage: "Print the request size limits",
		Flags: []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			return output(c, ops.ListLimits())
		},
	}
}

// linkCmd creates the link command.
func linkCmd() *cli.Command {
	return &cli.Command{
		Name:      "link",
		Usage:     "Build a link_to_page block",
		ArgsUsage: "<page-or-database-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "database", Aliases: []string{"d"}, Usage: "Link to a database instead of a page"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			target := "page_id"
			if c.Bool("database") {
				target = "database_id"
			}

			block, err := ops.LinkToPage(target, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return output(c, block)
		},
	}
}

// refCmd creates the ref command.
func refCmd() *cli.Command {
	return &cli.Command{
		Name:      "ref",
		Usage:     "Build a synced_block referencing an original synced block",
		ArgsUsage: "<block-id>",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			block, err := ops.SyncedReference(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return output(c, block)
		},
	}
}

// draftsCmd groups the saved-draft commands.
func draftsCmd(db *sql.DB) *cli.Command {
	addressFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "workspace", Aliases: []string{"w"}, Value: "default", Usage: "Workspace name"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Draft name"},
		}
	}

	return &cli.Command{
		Name:  "drafts",
		Usage: "Manage saved drafts",
		Before: func(c *cli.Context) error {
			if db == nil {
				return outputError(errors.NewInternal(stderrors.New("draft store is not available")))
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List drafts in a workspace",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "workspace", Aliases: []string{"w"}, Value: "default", Usage: "Workspace name"},
					&cli.IntFlag{Name: "limit", Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
					&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
					&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted drafts"},
					formatFlag(),
				},
				Action: func(c *cli.Context) error {
					out, err := ops.ListDrafts(c.Context, db, ops.ListDraftsInput{
						Workspace:      c.String("workspace"),
						Limit:          c.Int("limit"),
						Offset:         c.Int("offset"),
						IncludeDeleted: c.Bool("include-deleted"),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, out)
				},
			},
			{
				Name:      "fetch",
				Usage:     "Fetch a draft by ID or name",
				ArgsUsage: "[id]",
				Flags: append(addressFlags(),
					&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted drafts"},
					&cli.BoolFlag{Name: "no-source", Usage: "Exclude the markdown source"},
					&cli.BoolFlag{Name: "payload-only", Aliases: []string{"p"}, Usage: "Print only the block array"},
					formatFlag(),
				),
				Action: func(c *cli.Context) error {
					input := ops.FetchDraftInput{IncludeDeleted: c.Bool("include-deleted")}
					if c.NArg() > 0 {
						input.ID = c.Args().First()
					} else {
						input.Workspace = c.String("workspace")
						input.Name = c.String("name")
					}
					if c.Bool("no-source") {
						includeSource := false
						input.IncludeSource = &includeSource
					}

					out, err := ops.FetchDraft(c.Context, db, input)
					if err != nil {
						return outputError(err)
					}
					if c.Bool("payload-only") {
						return output(c, map[string]json.RawMessage{"children": out.Payload})
					}
					return output(c, out)
				},
			},
			{
				Name:      "delete",
				Usage:     "Soft-delete a draft",
				ArgsUsage: "[id]",
				Flags:     append(addressFlags(), formatFlag()),
				Action: func(c *cli.Context) error {
					input := ops.DeleteDraftInput{}
					if c.NArg() > 0 {
						input.ID = c.Args().First()
					} else {
						input.Workspace = c.String("workspace")
						input.Name = c.String("name")
					}

					out, err := ops.DeleteDraft(c.Context, db, input)
					if err != nil {
						return outputError(err)
					}
					return output(c, out)
				},
			},
		},
	}
}

// Helper functions

// output writes v to the app writer in the format selected by --format.
func output(c *cli.Context, v any) error {
	switch strings.ToLower(c.String("format")) {
	case "", "json":
		return outputJSON(c.App.Writer, v)
	case "yaml", "yml":
		return outputYAML(c.App.Writer, v)
	default:
		return outputError(errors.NewInvalidRequest("--format must be one of: json, yaml"))
	}
}

// outputJSON marshals result as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v as YAML. Blocks only know how to marshal themselves
// as JSON, so v goes through JSON first.
func outputYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return outputError(errors.NewInternal(err))
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return outputError(errors.NewInternal(err))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return outputError(errors.NewInternal(err))
	}
	return enc.Close()
}

// outputError formats error for CLI.
func outputError(err error) error {
	var sErr *errors.ScribeError
	if stderrors.As(err, &sErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if r has piped data (not a terminal).
func stdinHasData(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readInput reads the command's piped input. Content is returned as-is;
// whitespace-only input counts as missing.
func readInput(c *cli.Context, what string) (string, error) {
	if !stdinHasData(c.App.Reader) {
		return "", errors.NewInvalidRequest(what + " must be piped via stdin")
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInvalidRequest(what + " is required")
	}
	return string(data), nil
}
