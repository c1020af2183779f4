package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestOpMeta_SpanName(t *testing.T) {
	m := OpMeta{Name: "upload"}
	if got := m.SpanName(); got != "retry.op.upload" {
		t.Errorf("SpanName() = %q, want %q", got, "retry.op.upload")
	}
}

func TestTracer_SpanLifecycle(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewTracer(tp.Tracer("test"))

	_, span := tracer.StartSpan(context.Background(), OpMeta{Name: "upload", ID: "req-1"})
	tracer.EndSpan(span, nil)

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if got := ended[0].Name(); got != "retry.op.upload" {
		t.Errorf("span name = %q, want %q", got, "retry.op.upload")
	}
	if got := ended[0].Status().Code; got != codes.Ok {
		t.Errorf("span status = %v, want Ok", got)
	}

	var foundName, foundID bool
	for _, attr := range ended[0].Attributes() {
		switch string(attr.Key) {
		case "op.name":
			foundName = attr.Value.AsString() == "upload"
		case "op.id":
			foundID = attr.Value.AsString() == "req-1"
		}
	}
	if !foundName {
		t.Error("op.name attribute missing or wrong")
	}
	if !foundID {
		t.Error("op.id attribute missing or wrong")
	}
}

func TestTracer_EndSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewTracer(tp.Tracer("test"))

	_, span := tracer.StartSpan(context.Background(), OpMeta{Name: "upload"})
	tracer.EndSpan(span, errors.New("boom"))

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if got := ended[0].Status().Code; got != codes.Error {
		t.Errorf("span status = %v, want Error", got)
	}
	if len(ended[0].Events()) == 0 {
		t.Error("no error event recorded on span")
	}
}

func TestNoopTracer(t *testing.T) {
	tracer := newNoopTracer()
	_, span := tracer.StartSpan(context.Background(), OpMeta{Name: "noop"})
	tracer.EndSpan(span, errors.New("ignored"))
}
