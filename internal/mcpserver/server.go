package mcpserver

import (
	"context"
	"net/http"

	"github.com/SHoar/Wedding-AI/internal/adapter"
	"github.com/SHoar/Wedding-AI/internal/api"
	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/rag"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskDocsInput is the input schema for the ask_docs tool.
type AskDocsInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the wedding documentation"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question         string                      `json:"question" jsonschema:"the question about the wedding"`
	Wedding          api.WeddingContext          `json:"wedding" jsonschema:"the wedding, id and name are required"`
	Guests           []api.GuestContext          `json:"guests,omitempty" jsonschema:"guest list"`
	Tasks            []api.TaskContext           `json:"tasks,omitempty" jsonschema:"planning tasks"`
	GuestbookEntries []api.GuestbookEntryContext `json:"guestbook_entries,omitempty" jsonschema:"guestbook messages"`
}

// Server exposes the question endpoints as MCP tools.
type Server struct {
	service rag.Service
	server  *mcp.Server
	logger  *logger_i.Logger
}

func New(service rag.Service) *Server {
	s := &Server{
		service: service,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    config.AppName,
			Title:   "Wedding AI",
			Version: config.AppVersion,
		}, nil),
		logger: logger_i.NewLogger("MCP Server"),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_docs",
		Description: "Answer a question using only the indexed wedding documentation (venue FAQ, policies, schedules).",
	}, s.askDocsTool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about a specific wedding using its live planning data plus the documentation.",
	}, s.askTool)

	return s
}

// Handler serves the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// Connect attaches the server to an already established transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func (s *Server) askDocsTool(ctx context.Context, _ *mcp.CallToolRequest, input AskDocsInput) (*mcp.CallToolResult, api.AskResponse, error) {
	question := input.Question
	if err := adapter.ValidateQuestion(&question); err != nil {
		return nil, api.AskResponse{}, err
	}

	answer, err := s.service.AskDocs(ctx, question)
	if err != nil {
		s.logger.WithTrace(ctx).Warn("ask_docs tool failed", "error", err)
		return nil, api.AskResponse{}, err
	}
	return nil, adapter.ToAskResponse(answer), nil
}

func (s *Server) askTool(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, api.AskResponse, error) {
	question := input.Question
	wedding := input.Wedding
	req := api.AskRequest{
		Question:         &question,
		Wedding:          &wedding,
		Guests:           input.Guests,
		Tasks:            input.Tasks,
		GuestbookEntries: input.GuestbookEntries,
	}
	if err := adapter.ValidateAskRequest(req); err != nil {
		return nil, api.AskResponse{}, err
	}

	answer, err := s.service.Ask(ctx, adapter.ToAskInput(req))
	if err != nil {
		s.logger.WithTrace(ctx).Warn("ask tool failed", "error", err)
		return nil, api.AskResponse{}, err
	}
	return nil, adapter.ToAskResponse(answer), nil
}
