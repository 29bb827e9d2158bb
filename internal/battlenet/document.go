package battlenet

// Document is one decoded API payload. The zero value is the empty
// document: every accessor returns its type's zero value, so extractors
// stay total without branching on transport outcomes.
type Document map[string]any

// IsEmpty reports whether the document carries no data
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Has reports whether the key is present
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Str returns the string under key, or "" when absent or not a string
func (d Document) Str(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}

	return ""
}

// Int returns the number under key truncated to int. JSON decoding
// produces float64, but documents built in code may hold int or int64.
func (d Document) Int(key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}

	return 0
}

// Int64 returns the number under key as int64, wide enough for
// epoch-millisecond timestamps.
func (d Document) Int64(key string) int64 {
	switch v := d[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}

	return 0
}

// Float returns the number under key, or 0 when absent or not numeric
func (d Document) Float(key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}

	return 0
}

// Bool returns the boolean under key, or false when absent
func (d Document) Bool(key string) bool {
	if b, ok := d[key].(bool); ok {
		return b
	}

	return false
}

// Doc returns the nested object under key. Absent or mistyped values
// yield the empty document, so lookups chain safely.
func (d Document) Doc(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	}

	return Document{}
}

// Docs returns the array of objects under key, skipping entries that
// are not objects. Absent keys yield nil.
func (d Document) Docs(key string) []Document {
	raw, ok := d[key].([]any)
	if !ok {
		if docs, ok := d[key].([]Document); ok {
			return docs
		}
		return nil
	}

	docs := make([]Document, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			docs = append(docs, Document(m))
		}
	}

	return docs
}
