package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("未设置 span 时不应返回 ok")
	}
}

func TestNewIDs_长度(t *testing.T) {
	if got := len(NewTraceID()); got != 32 {
		t.Fatalf("trace_id 长度应为 32，got=%d", got)
	}
	if got := len(NewSpanID()); got != 16 {
		t.Fatalf("span_id 长度应为 16，got=%d", got)
	}
}
