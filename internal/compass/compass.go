// Package compass defines the Fortune Compass application surface: the
// tell_fortune tool and the HTML widget it renders into.
package compass

import (
	"context"
	"log/slog"

	"github.com/ggoodman/fortune-compass/fortune"
	"github.com/ggoodman/fortune-compass/mcpservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "fortune-compass"
	ServerVersion = "1.0.0"

	ToolName = "tell_fortune"

	WidgetURI      = "ui://widget/fortune-compass.html"
	WidgetName     = "fortune-compass-widget"
	WidgetMIMEType = "text/html+skybridge"
)

// WidgetMeta is attached to the tool descriptor and the widget resource so
// the client can pair tool results with the widget.
func WidgetMeta() mcp.Meta {
	return mcp.Meta{
		"openai/outputTemplate":   WidgetURI,
		"openai/widgetAccessible": true,
	}
}

// InvocationMeta carries the status strings shown while the tool runs.
func InvocationMeta() mcp.Meta {
	return mcp.Meta{
		"openai/toolInvocation/invoking": "Consulting the Fortune Compass",
		"openai/toolInvocation/invoked":  "The oracle has spoken",
	}
}

// TellFortuneInput is the tell_fortune argument object.
type TellFortuneInput struct {
	Prompt string `json:"prompt" jsonschema:"description=Prompt for fortune telling"`
	Method string `json:"method,omitempty" jsonschema:"description=Method of divination,enum=tarot,enum=zhouyi,enum=guangong,enum=all,default=all"`
}

// Drawer is the part of the divination engine the tool depends on.
type Drawer interface {
	Draw(prompt string, method fortune.Method) (fortune.Reading, error)
}

// Options configures the application entries.
type Options struct {
	Drawer Drawer
	Logger *slog.Logger
}

// NewTellFortuneTool builds the tell_fortune tool.
func NewTellFortuneTool(opts Options) *mcpservice.ToolEntry {
	drawer := opts.Drawer
	if drawer == nil {
		drawer = &fortune.Drawer{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	meta := WidgetMeta()
	for k, v := range InvocationMeta() {
		meta[k] = v
	}

	return mcpservice.NewTool(ToolName,
		func(ctx context.Context, _ *mcp.CallToolRequest, in TellFortuneInput) (*mcp.CallToolResult, fortune.Reading, error) {
			method, err := fortune.ParseMethod(in.Method)
			if err != nil {
				return nil, nil, err
			}
			reading, err := drawer.Draw(in.Prompt, method)
			if err != nil {
				log.ErrorContext(ctx, "fortune.draw.err", slog.String("method", string(method)), slog.String("err", err.Error()))
				return nil, nil, err
			}
			log.InfoContext(ctx, "fortune.draw.ok", slog.String("method", string(method)), slog.Int("results", len(reading)))

			res := mcpservice.TextResult(reading.Summary())
			res.Meta = InvocationMeta()
			return res, reading, nil
		},
		mcpservice.WithToolTitle("Tell Fortune"),
		mcpservice.WithToolDescription("Tell your fortune via Tarot, ZhouYi, or Guangong"),
		mcpservice.WithToolMeta(meta),
	)
}

// NewWidgetResource wraps the widget markup.
func NewWidgetResource(html string) *mcpservice.ResourceEntry {
	return mcpservice.NewStaticResource(mcp.Resource{
		URI:         WidgetURI,
		Name:        WidgetName,
		Description: "A specialized UI widget for fortune telling",
		MIMEType:    WidgetMIMEType,
		Meta:        WidgetMeta(),
	}, html)
}

// NewRegistry assembles the tool and widget entries.
func NewRegistry(widgetHTML string, opts Options) (*mcpservice.Registry, error) {
	return mcpservice.NewRegistry(
		NewTellFortuneTool(opts),
		NewWidgetResource(widgetHTML),
	)
}

// Implementation identifies the server to clients.
func Implementation() *mcp.Implementation {
	return &mcp.Implementation{Name: ServerName, Version: ServerVersion}
}
