package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"chatterm/app"
	"chatterm/chat"
	"chatterm/config"
	"chatterm/export"
	"chatterm/log"
	"chatterm/markup"
	"chatterm/store"
	"chatterm/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.1.0"

const defaultRenderWidth = 80

type rootFlags struct {
	apiBaseURL string
	storage    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "chatterm",
		Short:         "chatterm - a terminal chat client with rich message rendering",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.apiBaseURL, "api", "", "Chat backend base URL (overrides api_base_url)")
	rootCmd.PersistentFlags().StringVar(&flags.storage, "storage", "", "History storage backend: file or sqlite")

	rootCmd.AddCommand(
		newRenderCmd(&flags),
		newNodesCmd(&flags),
		newExportCmd(&flags),
		newResetCmd(&flags),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(flags rootFlags) (*config.Config, error) {
	cfg := config.LoadConfig()
	if flags.apiBaseURL != "" {
		cfg.APIBaseURL = flags.apiBaseURL
	}
	if flags.storage != "" {
		cfg.StorageBackend = flags.storage
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// readInput reads the named file, or stdin when no file is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// terminalWidth returns the width of stdout, or defaultRenderWidth when
// stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultRenderWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultRenderWidth
	}
	return width
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		width   int
		glamour bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a message file (or stdin) the way the chat view shows it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			if glamour {
				cfg.Renderer = config.RendererGlamour
			}
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = terminalWidth()
			}
			r := ui.NewRendererFromConfig(cfg, ui.ApplyDarkMode(cfg.DarkMode))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Render(content, width))
			return err
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Output width (defaults to the terminal width)")
	cmd.Flags().BoolVar(&glamour, "glamour", false, "Use the glamour markdown renderer")
	return cmd
}

func newNodesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes [file]",
		Short: "Print the parsed content nodes of a message as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			parser := markup.NewParser(markup.WithMaxRunes(cfg.MaxParseRunes))
			data, err := markup.MarshalNodes(parser.Parse(content))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

// openHistory opens the configured store. The returned function closes it.
func openHistory(ctx context.Context, cfg *config.Config) (*store.History[chat.Message], func() error, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	kv, closeKV, err := store.Open(ctx, cfg.StorageBackend, dir)
	if err != nil {
		return nil, nil, err
	}
	return store.NewHistory[chat.Message](kv), closeKV, nil
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		format string
		out    string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored conversation as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			history, closeHistory, err := openHistory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			data, err := export.Render(format, title, history.Load(cmd.Context()))
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			log.InfoLog.Printf("exported conversation to %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMarkdown, "Output format: md or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVar(&title, "title", "chatterm conversation", "Page title for HTML output")
	return cmd
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			history, closeHistory, err := openHistory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			if err := history.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Conversation history cleared")
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chatterm",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chatterm version %s\n", version)
		},
	}
}

func main() {
	log.Initialize()
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		log.Close()
		os.Exit(1)
	}
}
