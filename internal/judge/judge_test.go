package judge

import (
	"context"
	"fmt"
	"testing"
)

type cannedProvider struct {
	output string
	err    error
}

func (p *cannedProvider) Name() string { return "canned" }

func (p *cannedProvider) Complete(ctx context.Context, req Request) (string, error) {
	return p.output, p.err
}

func (p *cannedProvider) IsAvailable(ctx context.Context) bool { return true }

type sampleOutput struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func TestInvoke_ParsesJSON(t *testing.T) {
	p := &cannedProvider{output: `{"value": "ok", "count": 2}`}

	out, err := Invoke[sampleOutput](context.Background(), p, Request{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Value != "ok" || out.Count != 2 {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestInvoke_StripsCodeFences(t *testing.T) {
	p := &cannedProvider{output: "```json\n{\"value\": \"fenced\", \"count\": 1}\n```"}

	out, err := Invoke[sampleOutput](context.Background(), p, Request{})
	if err != nil {
		t.Fatalf("expected fenced JSON parsed, got %v", err)
	}
	if out.Value != "fenced" {
		t.Errorf("unexpected value: %q", out.Value)
	}
}

func TestInvoke_TransportError(t *testing.T) {
	p := &cannedProvider{err: fmt.Errorf("connection refused")}

	if _, err := Invoke[sampleOutput](context.Background(), p, Request{}); err == nil {
		t.Error("expected transport error surfaced")
	}
}

func TestInvoke_UnparseableOutput(t *testing.T) {
	p := &cannedProvider{output: "I cannot answer that as JSON."}

	if _, err := Invoke[sampleOutput](context.Background(), p, Request{}); err == nil {
		t.Error("expected parse error surfaced")
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\": 1}":                     `{"a": 1}`,
		"```json\n{\"a\": 1}\n```":       `{"a": 1}`,
		"```\n{\"a\": 1}\n```":           `{"a": 1}`,
		" \n```json\n{\"a\": 1}\n``` \t": `{"a": 1}`,
	}
	for input, want := range cases {
		if got := StripFences(input); got != want {
			t.Errorf("StripFences(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
