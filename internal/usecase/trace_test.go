package usecase

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestStartUsecaseSpan_NoParentStaysNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startUsecaseSpan(ctx, "usecase.Test", actorAttr("u1"))
	if got != ctx {
		t.Fatalf("expected context unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span")
	}
}

func TestCompactAttrs_DropsEmptyStrings(t *testing.T) {
	got := compactAttrs([]attribute.KeyValue{actorAttr(" "), eventAttr("e-1"), attribute.Int("n", 0)})
	if len(got) != 2 || got[0].Key != "teamtrack.event_id" || got[1].Key != "n" {
		t.Fatalf("unexpected attrs %v", got)
	}
}
