package wire

import (
	"encoding/json"
	"testing"
)

func TestNormalizeScalars(t *testing.T) {
	rec := Record{
		"symbol":     String("AAPL"),
		"confidence": Number("85.5"),
	}
	got := Normalize(rec)

	if got["symbol"] != "AAPL" {
		t.Fatalf("unexpected symbol %v", got["symbol"])
	}
	if got["confidence"] != 85.5 {
		t.Fatalf("unexpected confidence %v", got["confidence"])
	}
}

func TestNormalizeList(t *testing.T) {
	rec := Record{
		"reasons": List(String("RSI oversold"), Number("42"), Map(map[string]Value{"x": String("y")})),
	}
	got := Normalize(rec)

	items, ok := got["reasons"].([]interface{})
	if !ok {
		t.Fatalf("expected list, got %T", got["reasons"])
	}
	// The nested map element is not part of the list contract and is skipped.
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "RSI oversold" {
		t.Fatalf("unexpected item %v", items[0])
	}
	if items[1] != 42.0 {
		t.Fatalf("unexpected item %v", items[1])
	}
}

func TestNormalizeNestedMap(t *testing.T) {
	rec := Record{
		"technical_data": Map(map[string]Value{
			"rsi":    Number("28.3"),
			"nested": Map(map[string]Value{"sma_20": Number("150.1")}),
		}),
	}
	got := Normalize(rec)

	tech, ok := got["technical_data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got["technical_data"])
	}
	if tech["rsi"] != 28.3 {
		t.Fatalf("unexpected rsi %v", tech["rsi"])
	}
	inner, ok := tech["nested"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested map")
	}
	if inner["sma_20"] != 150.1 {
		t.Fatalf("unexpected sma_20 %v", inner["sma_20"])
	}
}

func TestNormalizeDropsMalformed(t *testing.T) {
	rec := Record{
		"bad_number": Number("not-a-number"),
		"untagged":   {},
		"good":       String("kept"),
	}
	got := Normalize(rec)

	if len(got) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(got))
	}
	if got["good"] != "kept" {
		t.Fatalf("unexpected value %v", got["good"])
	}
}

func TestRecordDecodesTaggedJSON(t *testing.T) {
	raw := `{"symbol":{"S":"MSFT"},"price":{"N":"415.2"},"meta":{"M":{"source":{"S":"scan"}}}}`

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := Normalize(rec)

	if got["symbol"] != "MSFT" || got["price"] != 415.2 {
		t.Fatalf("unexpected attrs %v", got)
	}
	meta, ok := got["meta"].(map[string]interface{})
	if !ok || meta["source"] != "scan" {
		t.Fatalf("unexpected meta %v", got["meta"])
	}
}
