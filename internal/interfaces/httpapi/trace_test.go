package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.GetStandings", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHandlerKind(t *testing.T) {
	tests := map[string]string{
		"httpapi.Handler.RunFetchTeamsJob":  "job",
		"httpapi.Handler.RunProcessingJob":  "job",
		"httpapi.Handler.Healthz":           "system",
		"httpapi.Handler.ListHeadToHead":    "lookup",
		"httpapi.Handler.GetLeagueOverview": "lookup",
	}
	for in, want := range tests {
		if got := handlerKind(in); got != want {
			t.Fatalf("handlerKind(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := startSpan(ctx, "httpapi.Handler.GetStandings")
	if gotCtx != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}
}
