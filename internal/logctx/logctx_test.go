package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerAddsContextGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(Handler{slog.NewJSONHandler(&buf, nil)}).With("component", "test")

	ctx := WithRequestData(context.Background(), &RequestData{RequestID: "r1", Method: "POST", Path: "/mcp"})
	ctx = WithSessionData(ctx, &SessionData{SessionID: "s1", Route: "create"})
	ctx = WithToolCallData(ctx, &ToolCallData{ToolName: "tell_fortune"})
	log.InfoContext(ctx, "tool.call.ok")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log record: %v (%s)", err, buf.String())
	}
	if rec["component"] != "test" {
		t.Fatalf("expected attrs from With to survive wrapping, got %v", rec)
	}
	req, _ := rec["req"].(map[string]any)
	if req["id"] != "r1" || req["path"] != "/mcp" {
		t.Fatalf("unexpected req group: %v", rec["req"])
	}
	sess, _ := rec["sess"].(map[string]any)
	if sess["id"] != "s1" || sess["route"] != "create" {
		t.Fatalf("unexpected sess group: %v", rec["sess"])
	}
	tool, _ := rec["tool"].(map[string]any)
	if tool["name"] != "tell_fortune" {
		t.Fatalf("unexpected tool group: %v", rec["tool"])
	}
	if _, ok := rec["rpc"]; ok {
		t.Fatalf("rpc group must be absent when not on the context")
	}
}

func TestWrapIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	log := Wrap(Wrap(slog.New(slog.NewJSONHandler(&buf, nil))))

	ctx := WithRequestData(context.Background(), &RequestData{RequestID: "r1"})
	log.InfoContext(ctx, "http.request")

	if n := bytes.Count(buf.Bytes(), []byte(`"req"`)); n != 1 {
		t.Fatalf("expected one req group, got %d: %s", n, buf.String())
	}
}
