package main

import (
	_ "embed"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markusylisiurunen/tulkki/internal/agent"
	"github.com/markusylisiurunen/tulkki/internal/config"
	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/internal/tui"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/markusylisiurunen/tulkki/toolkit/relay"
	"github.com/markusylisiurunen/tulkki/toolkit/tool"
)

//go:embed prompts/system.txt
var systemPrompt string

func main() {
	cfg, err := config.Load("tulkki.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if cfg.APIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is not set")
	}
	// if in debug mode, create a debug log file
	var debugLogger logger.Logger = logger.NoOp()
	if cfg.Debug {
		if err := os.MkdirAll(".tulkki/logs", 0755); err != nil {
			log.Fatalf("error creating debug folder: %v", err)
		}
		debugLogFile := time.Now().Format("2006-01-02T15:04:05") + ".log"
		f, err := os.OpenFile(".tulkki/logs/"+debugLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close() //nolint:errcheck
		debugLogger = logger.New(f)
		debugLogger.SetLevel("debug")
	}
	client := llm.NewOpenAI(debugLogger, cfg.APIKey, cfg.Model,
		llm.WithDefaults(cfg.Temperature, cfg.MaxTokens))
	tools := []llm.Tool{
		tool.NewWeather().SetLogger(debugLogger),
		tool.NewCalc().SetLogger(debugLogger),
		tool.NewStock().SetLogger(debugLogger),
		tool.NewEmail().SetLogger(debugLogger),
		tool.NewRecords().SetLogger(debugLogger),
	}
	dispatch, err := relay.New(debugLogger, client, systemPrompt, tools...)
	if err != nil {
		log.Fatalf("error building relay: %v", err)
	}
	mode := cfg.Mode
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	if mode == "" {
		mode = "chat"
	}
	switch mode {
	case "structured":
		runStructuredDemo(client)
	case "profile":
		runProfileDemo(client)
	case "tools":
		runToolsDemo(dispatch)
	case "chat":
		chatAgent := agent.New(debugLogger, dispatch, systemPrompt)
		program := tea.NewProgram(tui.Initial(debugLogger, chatAgent), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("error running program: %v", err)
		}
	default:
		log.Fatalf("invalid mode: %s, must be one of: structured, profile, tools, chat", mode)
	}
}
