package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"evplan/internal/stats"
)

// ResponseEnvelope is the JSON document every tool returns.
type ResponseEnvelope struct {
	Data     any               `json:"data"`
	Context  map[string]any    `json:"context,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Guidance []string          `json:"guidance,omitempty"`
	Charts   map[string]string `json:"charts,omitempty"`
}

// WrapResponse builds the envelope around a handler result.
func WrapResponse(data any, ctx map[string]any, warnings, guidance []string) ResponseEnvelope {
	return ResponseEnvelope{
		Data:     data,
		Context:  ctx,
		Warnings: warnings,
		Guidance: guidance,
	}
}

// withChart attaches a Mermaid chart when charts are enabled and the chart is not empty.
func (s *Server) withChart(env ResponseEnvelope, name, chart string) ResponseEnvelope {
	if !s.cfg.EnableMermaidCharts || chart == "" {
		return env
	}
	if env.Charts == nil {
		env.Charts = make(map[string]string)
	}
	env.Charts[name] = chart
	return env
}

func (s *Server) formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}

// handle adapts a plain handler into a typed MCP tool handler. Handler errors become tool
// errors, not protocol errors.
func handle[In any](s *Server, name string, fn func(context.Context, In) (any, error)) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		res, err := fn(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return nil, nil, err
		}
		log.Debug().Str("tool", name).Dur("took", time.Since(start)).Msg("Tool call completed")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: s.formatResult(res)}},
		}, nil, nil
	}
}

// inputSchema infers the schema of T and applies per-property descriptions and enums.
func inputSchema[T any](enums map[string][]any) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema for %T: %v", *new(T), err))
	}
	for prop, values := range enums {
		if p, ok := schema.Properties[prop]; ok {
			p.Enum = values
		}
	}
	return schema
}

// parseDate accepts YYYY-MM-DD. An empty string yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// unknownFilter reports a filter value that could not be parsed and was treated as ALL.
func unknownFilter(field, value string, ok bool) []string {
	if ok || value == "" || strings.EqualFold(value, stats.FilterAll) {
		return nil
	}
	return []string{fmt.Sprintf("%s %q is not recognised; showing ALL", field, value)}
}
