package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	. "workbench/core/types"
	"workbench/resolve"
	"workbench/session"
)

// Server exposes the workspace to external collaborators over MCP: one
// open tool per widget kind plus list and close tools. An open call is
// materialized as an assistant message carrying a component directive and
// fed through the same resolver path as chat, so consumption and
// enrichment rules apply unchanged.
type Server struct {
	resolver  *resolve.Resolver
	history   *session.History
	workspace *session.Workspace
	mcp       *server.MCPServer
}

// NewServer builds the MCP server and registers its tools
func NewServer(name, version string, resolver *resolve.Resolver, history *session.History, workspace *session.Workspace) *Server {
	s := &Server{
		resolver:  resolver,
		history:   history,
		workspace: workspace,
		mcp:       server.NewMCPServer(name, version),
	}
	s.registerTools()
	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	for _, kind := range AllKinds {
		kind := kind
		tool := mcp.NewTool(openToolName(kind),
			mcp.WithDescription(fmt.Sprintf("Open a %s widget in the workspace", kind.DisplayName())),
			mcp.WithString("props",
				mcp.Description("JSON object of widget props, e.g. {\"url\": \"https://...\"}"),
			),
		)
		s.mcp.AddTool(tool, s.handleOpen(kind))
	}

	s.mcp.AddTool(mcp.NewTool("list_widgets",
		mcp.WithDescription("List the open widgets and which one is active"),
	), s.handleList)

	s.mcp.AddTool(mcp.NewTool("close_widget",
		mcp.WithDescription("Close an open widget by id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The widget instance id"),
		),
	), s.handleClose)
}

func openToolName(kind Kind) string {
	return "open_" + strings.ReplaceAll(string(kind), "-", "_")
}

func (s *Server) handleOpen(kind Kind) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		props := map[string]any{}
		if raw, ok := req.GetArguments()["props"].(string); ok && strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &props); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("props is not a JSON object: %v", err)), nil
			}
		}

		msg := s.history.AppendMessage(session.Message{
			Role:      session.RoleAssistant,
			Segments:  []string{fmt.Sprintf("Opening %s", kind.DisplayName())},
			Directive: &Directive{Component: string(kind), Props: props},
		})

		inst, created := s.resolver.ProcessMessage(msg)
		if !created {
			return mcp.NewToolResultText("directive ignored (already consumed or unmappable)"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("opened %s (id %s)", inst.Title, inst.ID)), nil
	}
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	open := s.workspace.Open()
	if len(open) == 0 {
		return mcp.NewToolResultText("no widgets open"), nil
	}

	activeID := s.workspace.ActiveID()
	var b strings.Builder
	for _, inst := range open {
		marker := " "
		if inst.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s  %s  (%s)\n", marker, inst.ID, inst.Title, inst.Kind)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleClose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := req.GetArguments()["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if !s.workspace.CloseWidget(id) {
		return mcp.NewToolResultError(fmt.Sprintf("no open widget with id %s", id)), nil
	}
	return mcp.NewToolResultText("closed"), nil
}
