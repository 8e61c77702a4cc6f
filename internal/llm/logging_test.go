package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/wordfill/internal/store"
)

type recordingEvents struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16},
	})
	events := &recordingEvents{}
	p := WithLogging(mock, ProviderMock, events, nil)

	ctx := WithSessionID(WithPurpose(context.Background(), PurposeSentenceGen), "sess-1")
	if _, err := p.Generate(ctx, Request{System: "be brief", Messages: []Message{{Role: RoleUser, Content: "word: owl"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	ev := events.events[0]
	if ev.Provider != "mock" || ev.Model != "mock" || ev.Purpose != PurposeSentenceGen || ev.SessionID != "sess-1" {
		t.Fatalf("unexpected event identity: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 4 || ev.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected event payload: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nbe brief") || !strings.Contains(ev.RequestBody, "[user]\nword: owl") {
		t.Fatalf("request body not rendered: %q", ev.RequestBody)
	}
}

func TestLoggingProvider_FailureAndBrokenEventLog(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	events := &recordingEvents{err: errors.New("db locked")}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := WithLogging(mock, ProviderMock, events, logger)
	_, err := p.Generate(context.Background(), Request{})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("provider error must pass through, got %v", err)
	}

	if len(events.events) != 1 || events.events[0].Success || events.events[0].ErrorMessage != "boom" {
		t.Fatalf("failure not recorded: %+v", events.events)
	}
	if events.events[0].Purpose != PurposeUnknown {
		t.Fatalf("expected unknown purpose, got %q", events.events[0].Purpose)
	}
	out := buf.String()
	if !strings.Contains(out, "llm request failed") || !strings.Contains(out, "record llm event") {
		t.Fatalf("expected both warnings in log output, got:\n%s", out)
	}
}

func TestLoggingProvider_NilEvents(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatRequest_Schema(t *testing.T) {
	out := formatRequest(Request{Schema: &Schema{Name: "tiny", Definition: map[string]any{"type": "object"}}})
	if out != "[schema: tiny]\n{\"type\":\"object\"}\n" {
		t.Fatalf("unexpected rendering: %q", out)
	}
}
