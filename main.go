package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"workbench/config"
	"workbench/core/audit"
	chatinterface "workbench/interface/chat"
	"workbench/llm"
	"workbench/mcp"
	"workbench/resolve"
	"workbench/session"
	"workbench/terminal"
	"workbench/ui"
	"workbench/widget"
)

const version = "1.0.0"

var httpClient = &http.Client{Timeout: 15 * time.Second}

const helpText = `Commands:
  help             show this help
  widgets          list open widgets
  show             render the active widget
  show <n>         render widget n from the list
  run              execute the active API tester request
  run <n>          execute widget n's request
  use <n>          make widget n active
  close <n>        close widget n
  exit, quit       leave the workbench

Anything else is treated as a request: name a tool ("open a terminal",
"show me that json") or just describe what you need.`

func main() {
	configPath := flag.String("config", "", "path to config file")
	mcpMode := flag.Bool("mcp", false, "serve the workspace over MCP on stdin/stdout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != "" {
			fmt.Printf("Warning: failed to load config, using defaults: %v\n", err)
		}
		cfg = config.Get()
	}

	history := session.NewHistory(cfg.History.MaxTurns)
	workspace := session.NewWorkspace()
	if config.IsAuditEnabled() {
		workspace.SetObserver(audit.Observer())
	}

	manager := llm.NewManager()
	for name, llmCfg := range cfg.LLMs {
		err := manager.RegisterLLM(llm.Purpose(name), llm.Config{
			Provider:    llmCfg.Provider,
			Model:       llmCfg.Model,
			Temperature: llmCfg.Temperature,
			BaseURL:     llmCfg.BaseURL,
			Options:     llmCfg.Options,
		})
		if err != nil {
			fmt.Printf("Warning: skipping LLM %q: %v\n", name, err)
		}
	}

	resolver := resolve.NewResolver(workspace, history, manager)

	if *mcpMode {
		srv := mcp.NewServer(cfg.MCP.Name, version, resolver, history, workspace)
		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	runChat(ctx, cfg, history, workspace, resolver, manager)
}

func runChat(ctx context.Context, cfg *config.Config, history *session.History, workspace *session.Workspace, resolver *resolve.Resolver, manager *llm.Manager) {
	chatUI := chatinterface.NewInterface()
	sim := terminal.NewSimulator(time.Duration(cfg.Terminal.LineDelayMS) * time.Millisecond)

	chatUI.PrintWelcome("\n=== Workbench ===")
	if len(cfg.LLMs) > 0 {
		fmt.Println("Configured models:")
		for name, llmCfg := range cfg.LLMs {
			fmt.Printf("  %s: %s\n", name, llmCfg.Model)
		}
	}
	fmt.Println("\nType 'help' for commands. What do you need?")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nGraceful shutdown.")
			return
		default:
		}

		input, err := chatUI.ReadInput()
		if err != nil {
			chatUI.DisplayError(err)
			return
		}
		if input == "" {
			// EOF
			return
		}

		if handled := handleCommand(ctx, chatUI, workspace, input); handled {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		history.Append(session.RoleUser, input)

		chatUI.ShowThinking("Working it out...")
		result := resolver.ResolveIntent(ctx, input)
		chatUI.ClearStatus()

		if result.Tool == "" {
			reply := chatReply(ctx, manager, history, result.Message)
			history.Append(session.RoleAssistant, reply)
			chatUI.DisplayResponse(reply)
			chatUI.PrintSeparator()
			continue
		}

		history.Append(session.RoleAssistant, result.Message)
		chatUI.DisplayResponse(result.Message)

		inst, created := resolver.OpenFromIntent(input, result)
		if !created {
			chatUI.PrintSeparator()
			continue
		}

		if p, ok := inst.Payload.(widget.TerminalPayload); ok {
			fmt.Printf("\n$ %s\n", p.Command)
			if err := sim.Run(ctx, p.Command, chatUI.StreamLine); err != nil {
				return
			}
			chatUI.PrintSeparator()
			continue
		}

		chatUI.DisplayWidget(ui.RenderWidget(inst))
	}
}

// handleCommand processes workspace commands; returns false for anything
// that should go through the intent path instead.
func handleCommand(ctx context.Context, chatUI *chatinterface.Interface, workspace *session.Workspace, input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "help", "-help", "--help":
		chatUI.PrintHelp(helpText)
		return true

	case "widgets":
		fmt.Println(ui.RenderWorkspace(workspace))
		return true

	case "show":
		inst := workspace.Active()
		if len(fields) > 1 {
			inst = widgetByIndex(workspace, fields[1])
		}
		if inst == nil {
			fmt.Println("Nothing to show.")
			return true
		}
		chatUI.DisplayWidget(ui.RenderWidget(inst))
		return true

	case "run":
		// Only bare "run" and "run <n>" are workspace commands;
		// "run <command>" goes through the intent path.
		if len(fields) == 1 {
			runRequest(ctx, chatUI, workspace.Active())
			return true
		}
		if _, err := strconv.Atoi(fields[1]); err != nil || len(fields) > 2 {
			return false
		}
		runRequest(ctx, chatUI, widgetByIndex(workspace, fields[1]))
		return true

	case "use":
		if len(fields) < 2 {
			return true
		}
		if inst := widgetByIndex(workspace, fields[1]); inst != nil {
			_ = workspace.SetActive(inst.ID)
			fmt.Printf("Active: %s\n", inst.Title)
		} else {
			fmt.Println("No such widget.")
		}
		return true

	case "close":
		if len(fields) < 2 {
			return true
		}
		if inst := widgetByIndex(workspace, fields[1]); inst != nil {
			workspace.CloseWidget(inst.ID)
			fmt.Printf("Closed %s\n", inst.Title)
		} else {
			fmt.Println("No such widget.")
		}
		return true
	}

	return false
}

// runRequest executes an API tester widget's request and renders the
// classified response preview.
func runRequest(ctx context.Context, chatUI *chatinterface.Interface, inst *widget.Instance) {
	if inst == nil {
		fmt.Println("Nothing to run.")
		return
	}
	p, ok := inst.Payload.(widget.APITesterPayload)
	if !ok {
		fmt.Println("Only API tester widgets can be run.")
		return
	}

	chatUI.ShowThinking("Requesting...")
	result, err := widget.ExecuteRequest(ctx, httpClient, p)
	chatUI.ClearStatus()
	if err != nil {
		chatUI.DisplayError(err)
		return
	}
	chatUI.DisplayWidget(ui.RenderResponse(result))
}

// widgetByIndex resolves a 1-based list position from the widgets command
func widgetByIndex(workspace *session.Workspace, arg string) *widget.Instance {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil
	}
	open := workspace.Open()
	if n < 1 || n > len(open) {
		return nil
	}
	return open[n-1]
}

// chatReply asks the chat model for a conversational answer, falling back
// to the resolver's message when no model is reachable.
func chatReply(ctx context.Context, manager *llm.Manager, history *session.History, fallback string) string {
	messages := []llm.Message{
		{Role: "system", Content: "You are a concise assistant inside a developer tools workspace."},
	}
	for _, msg := range history.Messages() {
		messages = append(messages, llm.Message{Role: string(msg.Role), Content: msg.Content()})
	}

	resp, err := manager.Generate(ctx, llm.PurposeChat, llm.Request{Messages: messages})
	if err != nil || resp.Content == "" {
		return fallback
	}
	return resp.Content
}
