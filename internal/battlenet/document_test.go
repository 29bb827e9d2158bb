package battlenet

import (
	"encoding/json"
	"testing"
)

func TestDocumentAccessors(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{
		"name": "Xuen",
		"level": 80,
		"score": 2050.5,
		"is_classic": false,
		"has_queue": true,
		"guild": {"name": "Honestly"},
		"equipped_items": [
			{"item_level": 200},
			{"item_level": 210}
		]
	}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := doc.Str("name"); got != "Xuen" {
		t.Errorf("Str(name) = %q", got)
	}
	if got := doc.Int("level"); got != 80 {
		t.Errorf("Int(level) = %d", got)
	}
	if got := doc.Int64("level"); got != 80 {
		t.Errorf("Int64(level) = %d", got)
	}
	if got := doc.Float("score"); got != 2050.5 {
		t.Errorf("Float(score) = %v", got)
	}
	if doc.Bool("is_classic") {
		t.Error("Bool(is_classic) = true")
	}
	if !doc.Bool("has_queue") {
		t.Error("Bool(has_queue) = false")
	}
	if got := doc.Doc("guild").Str("name"); got != "Honestly" {
		t.Errorf("Doc(guild).Str(name) = %q", got)
	}
	if got := len(doc.Docs("equipped_items")); got != 2 {
		t.Errorf("len(Docs(equipped_items)) = %d", got)
	}
}

func TestDocumentMissingKeys(t *testing.T) {
	doc := Document{"level": float64(80)}

	if got := doc.Str("name"); got != "" {
		t.Errorf("Str on missing key = %q", got)
	}
	if got := doc.Int("rating"); got != 0 {
		t.Errorf("Int on missing key = %d", got)
	}
	if got := doc.Float("score"); got != 0 {
		t.Errorf("Float on missing key = %v", got)
	}
	if doc.Bool("has_queue") {
		t.Error("Bool on missing key = true")
	}
	if got := doc.Docs("runs"); got != nil {
		t.Errorf("Docs on missing key = %v", got)
	}

	// Nested access through missing keys never panics.
	if got := doc.Doc("guild").Doc("crest").Str("emblem"); got != "" {
		t.Errorf("chained access on missing keys = %q", got)
	}
}

func TestDocumentWrongTypes(t *testing.T) {
	doc := Document{
		"name":  float64(42),
		"level": "eighty",
		"guild": "not a map",
		"runs":  "not a list",
	}

	if got := doc.Str("name"); got != "" {
		t.Errorf("Str on number = %q", got)
	}
	if got := doc.Int("level"); got != 0 {
		t.Errorf("Int on string = %d", got)
	}
	if !doc.Doc("guild").IsEmpty() {
		t.Error("Doc on string should be empty")
	}
	if got := doc.Docs("runs"); got != nil {
		t.Errorf("Docs on string = %v", got)
	}
}

func TestDocumentEmpty(t *testing.T) {
	if !(Document{}).IsEmpty() {
		t.Error("empty document should report IsEmpty")
	}
	if (Document{"id": float64(1)}).IsEmpty() {
		t.Error("non-empty document reports IsEmpty")
	}
	if (Document{}).Has("id") {
		t.Error("empty document claims a key")
	}
}

func TestDocumentNestedKinds(t *testing.T) {
	// Doc handles both raw decoded maps and already-typed Documents.
	doc := Document{
		"raw":   map[string]any{"id": float64(1)},
		"typed": Document{"id": float64(2)},
	}

	if got := doc.Doc("raw").Int("id"); got != 1 {
		t.Errorf("Doc over map[string]any = %d", got)
	}
	if got := doc.Doc("typed").Int("id"); got != 2 {
		t.Errorf("Doc over Document = %d", got)
	}
}
