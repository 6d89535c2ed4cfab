// ABOUTME: Entry point for the deal tracker CLI, TUI, and MCP server
// ABOUTME: Routes commands and wires the store, audio, and pipeline stacks
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yasunobu-co-ltd-coder/matip/audio"
	"github.com/yasunobu-co-ltd-coder/matip/cli"
	"github.com/yasunobu-co-ltd-coder/matip/config"
	"github.com/yasunobu-co-ltd-coder/matip/db"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/pipeline"
	"github.com/yasunobu-co-ltd-coder/matip/tui"
	"github.com/yasunobu-co-ltd-coder/matip/web"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/matip/matip.db)")
	initOnly := flag.Bool("init", false, "Initialize the database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("matip version %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	ctx := context.Background()
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "login":
		service := openService(cfg)
		if err := cli.LoginCommand(ctx, service, cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "logout":
		if err := cli.LogoutCommand(cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "mcp":
		service := openService(cfg)
		sess := requireSession(cfg)
		if err := service.Refresh(ctx); err != nil {
			log.Fatalf("Failed to load deals: %v", err)
		}
		if err := cli.MCPCommand(service, sess); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "deals":
		if *initOnly {
			_ = openService(cfg)
			log.Println("Database initialized successfully")
			os.Exit(0)
		}
		if len(commandArgs) == 0 {
			fmt.Println("Error: deals requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		service := openService(cfg)
		sess := requireSession(cfg)
		if err := service.Refresh(ctx); err != nil {
			log.Fatalf("Failed to load deals: %v", err)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "add":
			if err := cli.AddDealCommand(ctx, service, sess, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list":
			if err := cli.ListDealsCommand(ctx, service, sess, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "done":
			if err := cli.DoneDealCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "restore":
			if err := cli.RestoreDealCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete":
			if err := cli.DeleteDealCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "edit":
			if err := cli.EditDealCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown deals command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "users":
		if len(commandArgs) == 0 {
			fmt.Println("Error: users requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		service := openService(cfg)
		if err := service.Refresh(ctx); err != nil {
			log.Fatalf("Failed to load users: %v", err)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "add":
			if err := cli.AddUserCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list":
			if err := cli.ListUsersCommand(ctx, service, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "remove":
			sess := requireSession(cfg)
			if err := cli.RemoveUserCommand(ctx, service, sess, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown users command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "record":
		service := openService(cfg)
		sess := requireSession(cfg)

		recorder := audio.NewFFmpegRecorder(audio.RecorderConfig{
			Command:     cfg.Audio.RecorderCommand,
			InputFormat: cfg.Audio.InputFormat,
			InputDevice: cfg.Audio.InputDevice,
			SampleRate:  cfg.Audio.SampleRate,
			Channels:    cfg.Audio.Channels,
		})
		controller := audio.NewController(recorder, cfg.SpoolDir)
		pipe := pipeline.New(buildTranscriber(cfg), buildExtractor(cfg))

		if err := cli.RecordCommand(ctx, service, sess, controller, pipe); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "serve":
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		port := fs.Int("port", 8080, "Port to listen on")
		_ = fs.Parse(commandArgs)

		service := openService(cfg)
		sess := requireSession(cfg)
		if err := service.Refresh(ctx); err != nil {
			log.Fatalf("Failed to load deals: %v", err)
		}

		server, err := web.NewServer(service, sess)
		if err != nil {
			log.Fatalf("Failed to start web server: %v", err)
		}
		if err := server.Start(*port); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "tui":
		service := openService(cfg)
		sess := requireSession(cfg)

		program := tea.NewProgram(tui.NewModel(service, sess), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "viz":
		if len(commandArgs) == 0 {
			fmt.Println("Error: viz requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		service := openService(cfg)

		switch commandArgs[0] {
		case "matrix":
			if err := cli.VizMatrixCommand(ctx, service, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "dashboard":
			sess := requireSession(cfg)
			if err := cli.VizDashboardCommand(ctx, service, sess); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown viz command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openService builds the service over the configured store backend.
func openService(cfg config.Config) *deals.Service {
	if cfg.Store == config.StoreSupabase {
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase store")
		}
		remote := db.NewRemoteStore(cfg.SupabaseURL, cfg.SupabaseKey)
		return deals.NewService(remote, remote)
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	store := db.NewStore(database)
	return deals.NewService(store, store)
}

func requireSession(cfg config.Config) deals.Session {
	sess, err := cli.ActiveSession(cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return sess
}

func buildTranscriber(cfg config.Config) pipeline.Transcriber {
	if cfg.Transcriber == config.TranscriberGoogle {
		if cfg.GoogleKey == "" {
			log.Fatal("GOOGLE_SPEECH_API_KEY is required for the google transcriber")
		}
		return pipeline.NewGoogleTranscriber(cfg.GoogleKey, "", int64(cfg.Audio.SampleRate))
	}
	return buildOpenAI(cfg)
}

func buildExtractor(cfg config.Config) pipeline.Extractor {
	return buildOpenAI(cfg)
}

func buildOpenAI(cfg config.Config) *pipeline.OpenAIClient {
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	return pipeline.NewOpenAIClient(pipeline.OpenAIConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		WhisperModel:   cfg.WhisperModel,
		ChatModel:      cfg.ChatModel,
		RequestTimeout: cfg.RequestTimeout,
	})
}

func printUsage() {
	fmt.Printf(`matip v%s - Field deal tracker

USAGE:
  matip [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/matip/matip.db)
  --init                 Initialize the database and exit (use with 'deals')

COMMANDS:
  login                  Enter the PIN and pick the active user
  logout                 Clear the active user
  record                 Record a voice memo and turn it into a deal
  deals                  Deal management commands
  users                  Assignee roster commands
  tui                    Interactive terminal interface
  serve                  Read-only web dashboard
    --port <port>           Port to listen on (default: 8080)
  viz                    Visualization commands
  mcp                    Start MCP server (stdio)

DEAL COMMANDS:
  matip deals add           Add a new deal
    --memo <text>             Deal memo (required)
    --client <name>           Client, company, or project name
    --due <YYYY-MM-DD>        Due date (default: today)
    --importance <level>      high, medium, low (default: medium)
    --urgency <level>         high, medium, low (default: medium)
    --profit <level>          high, medium, low (default: medium)
    --assignment <mode>       delegate or self (default: delegate)
    --assignee <name>         Assignee name
    --image <url>             Image URL to attach

  matip deals list          List deals
    --tab <tab>               open or done (default: open)
    --query <text>            Search client name and memo
    --filter <filter>         all, mine, delegated, self, overdue
    --sort <key>              due, importance, urgency, profit, newest, oldest

  matip deals done <id>     Mark an open deal as done
  matip deals restore <id>  Move a done deal back to open
  matip deals delete [--yes] <id>  Permanently delete a deal
  matip deals edit [flags] <id>    Edit a deal
    --client, --memo, --due, --importance, --urgency, --profit, --image

USER COMMANDS:
  matip users add <name>    Add a roster user
  matip users list          List roster users
  matip users remove <id>   Remove a roster user

VIZ COMMANDS:
  matip viz matrix          Urgency/importance matrix (graphviz)
    --output <file>           Output file (default: stdout)
  matip viz dashboard       Terminal dashboard

EXAMPLES:
  # Log in and record a deal by voice
  matip login
  matip record

  # Add a deal by hand
  matip deals add --memo "見積もりを送る" --client "Acme" --importance high

  # Overdue deals assigned to me
  matip deals list --filter overdue

  # Start MCP server for assistant integration
  matip mcp

`, version)
}
