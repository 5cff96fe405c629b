package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(rt ops.Runtime) *cli.App {
	app := &cli.App{
		Name:    "scout",
		Usage:   "Research session tracker",
		Version: Version,
		Commands: []*cli.Command{
			initCmd(rt),
			continueCmd(rt),
			listCmd(rt),
			logCmd(rt),
			syncCmd(rt),
			archiveCmd(rt),
			reportCmd(rt),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	dim     = color.New(color.Faint)
)

// initCmd creates the init command.
func initCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Start a new research session",
		ArgsUsage: "<topic>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "workflow", Aliases: []string{"w"}, Value: "research", Usage: "Workflow type: research|innovation-scout|deep-research"},
			&cli.StringFlag{Name: "env", Aliases: []string{"e"}, Usage: "Override the detected environment"},
		},
		Action: func(c *cli.Context) error {
			topic := strings.Join(c.Args().Slice(), " ")

			out, err := ops.Init(rt, ops.InitInput{
				Topic:       topic,
				Workflow:    c.String("workflow"),
				Environment: c.String("env"),
			})
			if err != nil {
				return outputError(err)
			}

			good.Printf("✅ Session initialized: %s\n", out.Session.SessionID)
			fmt.Printf("   Topic:       %s\n", out.Session.Topic)
			fmt.Printf("   Workflow:    %s\n", out.Session.Workflow)
			fmt.Printf("   Environment: %s\n", out.Session.Environment)
			fmt.Printf("   Workspace:   %s\n", out.Session.Paths.Local)

			heading.Println("\nSearch queries:")
			fmt.Printf("   viral:         %s\n", out.Session.Queries.Viral.GitHub)
			fmt.Printf("   groundbreaker: %s\n", out.Session.Queries.Groundbreaker.GitHub)
			return nil
		},
	}
}

// continueCmd creates the continue command.
func continueCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "continue",
		Usage:     "Resume a session from the global store",
		ArgsUsage: "[session-id]",
		Action: func(c *cli.Context) error {
			out, err := ops.Resume(rt, ops.ResumeInput{SessionID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			good.Printf("✅ Session resumed: %s\n", out.Session.SessionID)
			fmt.Printf("   Topic:   %s\n", out.Session.Topic)
			fmt.Printf("   Started: %s\n", out.Session.Started)
			fmt.Printf("   URLs so far: %d visited, %d used\n",
				out.Session.Stats.URLsVisited, out.Session.Stats.URLsUsed)
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List sessions in the global store",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum sessions to show"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.List(rt, ops.ListInput{Limit: c.Int("limit")})
			if err != nil {
				return outputError(err)
			}

			if len(out.Sessions) == 0 {
				warn.Println("No sessions in the global store.")
				return nil
			}

			heading.Printf("Sessions (%d of %d):\n", len(out.Sessions), out.Total)
			for _, s := range out.Sessions {
				fmt.Printf("  %s  [%s]\n", s.SessionID, s.Status)
				dim.Printf("    %s · %s · %d URLs (%d used)\n",
					s.Topic, s.Workflow, s.URLsVisited, s.URLsUsed)
			}
			return nil
		},
	}
}

// logCmd creates the log command.
func logCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Record a visited URL in the active session",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Source tag (auto-detected when omitted)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name (extracted when omitted)"},
			&cli.BoolFlag{Name: "used", Aliases: []string{"u"}, Usage: "Mark the URL as used in output"},
			&cli.BoolFlag{Name: "skipped", Usage: "Mark the URL as visited but skipped"},
			&cli.IntFlag{Name: "relevance", Aliases: []string{"r"}, Value: 2, Usage: "Relevance score 0-3"},
			&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Matching filter: viral|groundbreaker"},
			&cli.IntFlag{Name: "stars", Usage: "Repository star count"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LogInput{
				URL:       c.Args().First(),
				Source:    c.String("source"),
				Name:      c.String("name"),
				Used:      c.Bool("used"),
				Skipped:   c.Bool("skipped"),
				Relevance: c.Int("relevance"),
				Notes:     c.String("notes"),
				Filter:    c.String("filter"),
			}
			if c.IsSet("stars") {
				stars := c.Int("stars")
				input.Stars = &stars
			}

			out, err := ops.LogURL(rt, input)
			if err != nil {
				return outputError(err)
			}

			mark := "📝"
			if out.Entry.Used {
				mark = "✅"
			} else if out.Entry.Skipped {
				mark = "⏭️"
			}
			fmt.Printf("%s %s [%s] %s\n", mark, out.Status, out.Entry.Source, out.Entry.Name)
			dim.Printf("   %d visited, %d used, %d skipped\n",
				out.Stats.Total, out.Stats.Used, out.Stats.Skipped)
			return nil
		},
	}
}

// syncCmd creates the sync command with its status/push/pull subcommands.
func syncCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize the workspace with the global store",
		// Bare "scout sync" behaves as "scout sync status".
		Action: func(c *cli.Context) error {
			out, err := ops.Status(rt)
			if err != nil {
				return outputError(err)
			}
			printStatus(out)
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show both storage tiers",
				Action: func(c *cli.Context) error {
					out, err := ops.Status(rt)
					if err != nil {
						return outputError(err)
					}
					printStatus(out)
					return nil
				},
			},
			{
				Name:  "push",
				Usage: "Mirror the local workspace to the global store",
				Action: func(c *cli.Context) error {
					out, err := ops.Push(rt)
					if err != nil {
						return outputError(err)
					}
					good.Printf("✅ Pushed %s to global store\n", out.Session.SessionID)
					return nil
				},
			},
			{
				Name:      "pull",
				Usage:     "Overwrite the local workspace from the global store",
				ArgsUsage: "[session-id]",
				Action: func(c *cli.Context) error {
					out, err := ops.Pull(rt, ops.PullInput{SessionID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					good.Printf("✅ Pulled %s into %s\n", out.Session.SessionID, out.Session.Paths.Local)
					return nil
				},
			},
		},
	}
}

func printStatus(out *ops.StatusOutput) {
	heading.Printf("Environment: %s\n", out.Environment)

	if out.Local != nil {
		good.Println("\nLocal session:")
		fmt.Printf("  %s [%s]\n", out.Local.SessionID, out.Local.Status)
		fmt.Printf("  %s · %d URLs visited\n", out.Local.Topic, out.Local.URLsVisited)
		if out.Local.LastSync != "" {
			dim.Printf("  last sync: %s (%s)\n", out.Local.LastSync, out.Local.SyncDirection)
		}
	} else {
		warn.Println("\nNo local session.")
	}

	heading.Printf("\nGlobal store: %d sessions\n", out.TotalSessions)
	for _, s := range out.Recent {
		fmt.Printf("  %s [%s] %s\n", s.SessionID, s.Status, s.Topic)
	}

	if len(out.Memory) > 0 {
		heading.Println("\nMemory:")
		for _, m := range out.Memory {
			fmt.Printf("  %s (%d lines)\n", m.Name, m.Lines)
		}
	}
}

// archiveCmd creates the archive command.
func archiveCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Close out the active session into the global store",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-extract", Usage: "Skip learnings extraction"},
			&cli.BoolFlag{Name: "keep-local", Usage: "Leave the local workspace in place"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.Archive(rt, ops.ArchiveInput{
				SkipExtraction: c.Bool("no-extract"),
				KeepLocal:      c.Bool("keep-local"),
			})
			if err != nil {
				return outputError(err)
			}

			good.Printf("✅ Session archived: %s\n", out.SessionID)
			fmt.Printf("   Duration: %.1f minutes\n", out.DurationMinutes)
			fmt.Printf("   URLs:     %d visited, %d used, %d skipped\n",
				out.URLStats.Total, out.URLStats.Used, out.URLStats.Skipped)
			fmt.Printf("   Archive:  %s\n", out.GlobalDir)
			if len(out.Learnings) > 0 {
				fmt.Printf("   Learnings extracted: %d\n", len(out.Learnings))
			}
			if !out.KeptLocal {
				dim.Println("   Workspace cleared; resume with: scout continue " + out.SessionID)
			}
			return nil
		},
	}
}

// reportCmd creates the report command.
func reportCmd(rt ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Print a session's report (archive, or live log if active)",
		ArgsUsage: "[session-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "html", Usage: "Also render a standalone HTML page"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.Report(rt, ops.ReportInput{
				SessionID: c.Args().First(),
				HTML:      c.Bool("html"),
			})
			if err != nil {
				return outputError(err)
			}

			fmt.Print(out.Markdown)
			if out.HTMLPath != "" {
				good.Printf("\nHTML written to %s\n", out.HTMLPath)
			}
			return nil
		},
	}
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ScoutError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
