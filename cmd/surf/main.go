// Package main provides the surf command-line browser driver. It wires
// the browser tool surface to a line-oriented stdin loop so sessions
// can be driven interactively or from a piped script.
package main

import (
	"bufio"
	"context"
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/entrhq/surf/pkg/agent/tools"
	"github.com/entrhq/surf/pkg/config"
	"github.com/entrhq/surf/pkg/logging"
	"github.com/entrhq/surf/pkg/tools/browser"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	Workspace   string
	Headless    bool
	URL         string
	ShowVersion bool
}

func main() {
	cliConfig := parseFlags()

	if cliConfig.ShowVersion {
		fmt.Printf("surf v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cliConfig); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "surf: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cliConfig := &CLIConfig{}

	flag.StringVar(&cliConfig.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cliConfig.Workspace, "workspace", ".", "Workspace directory (default storage state lives under it)")
	flag.BoolVar(&cliConfig.Headless, "headless", true, "Run the browser without a visible window")
	flag.StringVar(&cliConfig.URL, "url", "", "URL to open before reading commands")
	flag.BoolVar(&cliConfig.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Surf - scriptable browser sessions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: surf [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands (read from stdin, one per line):\n")
		fmt.Fprintf(os.Stderr, "  navigate <url>            Open a page\n")
		fmt.Fprintf(os.Stderr, "  snapshot [max]            List interactive elements with refs\n")
		fmt.Fprintf(os.Stderr, "  content [selector]        Read visible page text\n")
		fmt.Fprintf(os.Stderr, "  content html [selector]   Read cleaned page HTML\n")
		fmt.Fprintf(os.Stderr, "  click <ref>               Click an element by ref\n")
		fmt.Fprintf(os.Stderr, "  type [-submit] <ref> <text>  Type into an element by ref\n")
		fmt.Fprintf(os.Stderr, "  press [key]               Press a key (default Enter)\n")
		fmt.Fprintf(os.Stderr, "  save                      Save cookies and storage to disk\n")
		fmt.Fprintf(os.Stderr, "  quit                      Close the browser and exit\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  surf -url https://example.com\n")
		fmt.Fprintf(os.Stderr, "  echo 'navigate https://example.com' | surf\n\n")
	}

	flag.Parse()
	return cliConfig
}

// run drives the command loop until stdin closes, quit is issued, or
// the context is cancelled.
func run(ctx context.Context, cliConfig *CLIConfig) error {
	cfg, err := loadConfig(cliConfig)
	if err != nil {
		return err
	}

	// A logging init failure falls back to stderr, never blocks the CLI.
	log, _ := logging.NewLogger("cli")
	defer func() { _ = log.Close() }()

	workspace := cliConfig.Workspace
	if cfg.WorkspaceDir != "" {
		workspace = cfg.WorkspaceDir
	}

	toolSet, session := browser.CreateBrowserTools(cfg, workspace)
	if session == nil {
		return fmt.Errorf("browser automation is disabled in configuration")
	}
	defer session.Close()

	byName := make(map[string]tools.Tool, len(toolSet))
	for _, tool := range toolSet {
		byName[tool.Name()] = tool
	}

	log.Infof("session started (headless=%v, workspace=%s)", cfg.Headless, workspace)

	if cliConfig.URL != "" {
		execute(ctx, byName["browser_navigate"], browser.NavigateInput{URL: cliConfig.URL})
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := dispatch(ctx, byName, line); done {
			return nil
		}
	}
}

// dispatch parses one command line and runs it. Returns true when the
// loop should exit.
func dispatch(ctx context.Context, byName map[string]tools.Tool, line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "quit", "exit":
		return true

	case "navigate":
		if len(args) < 1 {
			fmt.Println("usage: navigate <url>")
			return false
		}
		execute(ctx, byName["browser_navigate"], browser.NavigateInput{URL: args[0]})

	case "snapshot":
		input := browser.SnapshotInput{}
		if len(args) > 0 {
			max, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("usage: snapshot [max]")
				return false
			}
			input.MaxElements = &max
		}
		execute(ctx, byName["browser_snapshot"], input)

	case "content":
		input := browser.ContentInput{}
		if len(args) > 0 && args[0] == "html" {
			input.Format = "html"
			args = args[1:]
		}
		if len(args) > 0 {
			input.Selector = args[0]
		}
		execute(ctx, byName["browser_content"], input)

	case "click":
		if len(args) < 1 {
			fmt.Println("usage: click <ref>")
			return false
		}
		ref, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: click <ref>")
			return false
		}
		execute(ctx, byName["browser_click"], browser.ClickInput{Ref: ref})

	case "type":
		input := browser.TypeInput{}
		if len(args) > 0 && args[0] == "-submit" {
			input.Submit = true
			args = args[1:]
		}
		if len(args) < 2 {
			fmt.Println("usage: type [-submit] <ref> <text>")
			return false
		}
		ref, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: type [-submit] <ref> <text>")
			return false
		}
		input.Ref = ref
		input.Text = strings.Join(args[1:], " ")
		execute(ctx, byName["browser_type"], input)

	case "press":
		input := browser.PressInput{}
		if len(args) > 0 {
			input.Key = args[0]
		}
		execute(ctx, byName["browser_press"], input)

	case "save":
		execute(ctx, byName["browser_save_session"], struct {
			XMLName xml.Name `xml:"arguments"`
		}{})

	case "help":
		flag.Usage()

	default:
		fmt.Printf("unknown command %q (try: navigate, snapshot, content, click, type, press, save, quit)\n", command)
	}

	return false
}

// execute marshals the input, runs the tool, and prints the result.
func execute(ctx context.Context, tool tools.Tool, input interface{}) {
	argsXML, err := xml.Marshal(input)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, _, err := tool.Execute(ctx, argsXML)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(result)
}

// loadConfig loads configuration from file or builds it from CLI flags.
// The browser surface is always enabled for the CLI unless the config
// file explicitly disables it.
func loadConfig(cliConfig *CLIConfig) (*config.Config, error) {
	if cliConfig.ConfigFile != "" {
		cfg, err := config.LoadFile(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := config.Default()
	cfg.Enabled = true
	cfg.Headless = cliConfig.Headless
	return cfg, nil
}
