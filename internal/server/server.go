// Package server exposes a template table, path extraction and a few demo
// tools over the Model Context Protocol.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/templates"
)

// Transports accepted by Config.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects the transport. Address is only used for TransportHTTP.
type Config struct {
	Transport string
	Address   string
}

// Server wires a templates.Set into an MCP server.
type Server struct {
	set    *templates.Set
	logger *zap.Logger
	mcp    *mcpserver.MCPServer
}

// New registers every resource and template of set plus the tools and
// prompts. A nil logger disables logging.
func New(name, version string, set *templates.Set, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		set:    set,
		logger: logger,
		mcp: mcpserver.NewMCPServer(name, version,
			mcpserver.WithResourceCapabilities(false, false),
			mcpserver.WithPromptCapabilities(false),
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
	}
	s.registerResources()
	s.registerTools()
	s.registerPrompts()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

func (s *Server) registerResources() {
	for _, r := range s.set.Resources() {
		s.mcp.AddResource(mcp.NewResource(r.URI, r.Name,
			mcp.WithResourceDescription(r.Description),
			mcp.WithMIMEType(r.MIMEType),
		), s.ReadResource)
	}
	for _, t := range s.set.Templates() {
		s.mcp.AddResourceTemplate(mcp.NewResourceTemplate(t.URITemplate, t.Name,
			mcp.WithTemplateDescription(t.Description),
			mcp.WithTemplateMIMEType(t.MIMEType),
		), s.ReadResource)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("say_hello",
		mcp.WithDescription("Say hello to the client"),
	), s.SayHello)
	s.mcp.AddTool(mcp.NewTool("echo",
		mcp.WithDescription("Repeat what you say"),
	), s.Echo)
	s.mcp.AddTool(mcp.NewTool("sum",
		mcp.WithDescription("Calculate the sum of two numbers"),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("the left hand side number")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("the right hand side number")),
	), s.Sum)
	s.mcp.AddTool(mcp.NewTool("sub",
		mcp.WithDescription("Calculate the difference of two numbers"),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("the left hand side number")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("the right hand side number")),
	), s.Sub)
	s.mcp.AddTool(mcp.NewTool("extract",
		mcp.WithDescription("Extract typed parameters from a path using a template"),
		mcp.WithString("candidate", mcp.Required(), mcp.Description("Concrete path or URI")),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Template with {name} placeholders")),
	), s.Extract)
}

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("code_review",
		mcp.WithPromptDescription("Code review assistance"),
		mcp.WithArgument("pr_number",
			mcp.ArgumentDescription("Pull request number to review"),
			mcp.RequiredArgument(),
		),
	), s.CodeReview)
}

// ReadResource serves static resources and templates through Set.Read.
func (s *Server) ReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	c, err := s.set.Read(uri)
	if err != nil {
		s.logger.Warn("resource read failed", zap.String("uri", uri), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("resource read", zap.String("uri", uri))
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: c.URI, MIMEType: c.MIMEType, Text: c.Text},
	}, nil
}

func (s *Server) SayHello(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("hello"), nil
}

// Echo returns the call arguments as a JSON object.
func (s *Server) Echo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if args == nil {
		args = map[string]any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode arguments", err), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) Sum(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, b, errRes := operands(req)
	if errRes != nil {
		return errRes, nil
	}
	return mcp.NewToolResultText(strconv.Itoa(a + b)), nil
}

// Sub returns {"result": a-b}.
func (s *Server) Sub(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, b, errRes := operands(req)
	if errRes != nil {
		return errRes, nil
	}
	out, err := json.Marshal(struct {
		Result int `json:"result"`
	}{a - b})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode result", err), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func operands(req mcp.CallToolRequest) (int, int, *mcp.CallToolResult) {
	a, err := req.RequireInt("a")
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}
	b, err := req.RequireInt("b")
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}
	return a, b, nil
}

// Extract matches candidate against pattern and returns the parameter set
// as JSON. Extraction failures are tool errors, not protocol errors.
func (s *Server) Extract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	candidate, err := req.RequireString("candidate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ps, err := pathex.ExtractParams(candidate, pattern)
	if err != nil {
		s.logger.Debug("extract failed", zap.String("candidate", candidate), zap.String("pattern", pattern), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode parameters", err), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) CodeReview(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	prNumber := req.Params.Arguments["pr_number"]
	if prNumber == "" {
		return nil, errors.New("pr_number is required")
	}
	return mcp.NewGetPromptResult(
		"Code review assistance",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleUser,
				mcp.NewTextContent("Review the changes and provide constructive feedback."),
			),
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewEmbeddedResource(mcp.TextResourceContents{
					URI:      fmt.Sprintf("git://pulls/%s/diff", prNumber),
					MIMEType: "text/x-diff",
				}),
			),
		},
	), nil
}

const shutdownTimeout = 5 * time.Second

// Serve runs the server until ctx is done or the transport fails.
func Serve(ctx context.Context, s *Server, cfg Config) error {
	switch cfg.Transport {
	case "", TransportStdio:
		s.logger.Info("serving over stdio")
		return mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	case TransportHTTP:
		hs := mcpserver.NewStreamableHTTPServer(s.mcp)
		errCh := make(chan error, 1)
		go func() { errCh <- hs.Start(cfg.Address) }()
		s.logger.Info("serving streamable HTTP", zap.String("address", cfg.Address))
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return hs.Shutdown(sctx)
		}
	default:
		return fmt.Errorf("server: unknown transport %q", cfg.Transport)
	}
}
