package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/orderledger/internal/model"
)

func TestExportJSONL_Empty(t *testing.T) {
	ms := newMockStore()
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.OrderCount != 0 || h.EventCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestExportJSONL_OrdersWithEvents(t *testing.T) {
	ms := newMockStore()
	now := time.Now().UTC()

	// Add orders out of ID order to verify sorting.
	ms.orders["ord-zzz"] = &model.Order{ID: "ord-zzz", Status: model.StatusFulfilled, ChannelID: "default", CreatedAt: now, UpdatedAt: now}
	ms.orders["ord-aaa"] = &model.Order{ID: "ord-aaa", Status: model.StatusDraft, ChannelID: "default", CreatedAt: now, UpdatedAt: now}

	ms.events["ord-aaa"] = []*model.OrderEvent{
		model.NewNoteAdded("ord-aaa", model.Actor{UserID: "alice"}, "first"),
		model.NewNoteRemoved("ord-aaa", model.Actor{AppID: "bot"}, 1),
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 orders + 2 events = 5 lines
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.OrderCount != 2 || h.EventCount != 2 {
		t.Fatalf("header counts: orders=%d events=%d", h.OrderCount, h.EventCount)
	}

	// ord-aaa sorts first, so its two events precede ord-zzz.
	var recs [4]record
	for i := range recs {
		if err := json.Unmarshal([]byte(lines[i+1]), &recs[i]); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
	}
	wantTypes := []string{"order", "event", "event", "order"}
	for i, want := range wantTypes {
		if recs[i].Type != want {
			t.Fatalf("line %d type = %q, want %q", i+1, recs[i].Type, want)
		}
	}

	data, _ := json.Marshal(recs[0].Data)
	var first model.Order
	if err := json.Unmarshal(data, &first); err != nil {
		t.Fatalf("unmarshal first order: %v", err)
	}
	if first.ID != "ord-aaa" {
		t.Fatalf("orders not sorted: first = %q", first.ID)
	}
}

func nonEmptyLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}
