// Package model holds the documents stored in MongoDB. The same structs are
// bound from request bodies, so they carry json, bson and validate tags.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enum is implemented by every string enum; the "enum" validator tag uses it.
type Enum interface {
	Valid() bool
}

// Response is an append-only reply attached to tickets, inquiries and feedback.
type Response struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id"`
	Message     string              `json:"message" bson:"message"`
	RespondedBy *primitive.ObjectID `json:"respondedBy,omitempty" bson:"respondedBy,omitempty"`
	RespondedAt time.Time           `json:"respondedAt" bson:"respondedAt"`
}

// NewResponse stamps a reply with a fresh id and the current time.
func NewResponse(message string, by *primitive.ObjectID) Response {
	return Response{
		ID:          primitive.NewObjectID(),
		Message:     strings.TrimSpace(message),
		RespondedBy: by,
		RespondedAt: time.Now().UTC(),
	}
}

// PersonRef is the joined {name, email} of a referenced user, agent or staff member.
type PersonRef struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
}

// Date accepts both RFC 3339 timestamps and plain yyyy-mm-dd values from
// date inputs. It is stored as a BSON datetime.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date { return Date{Time: t.UTC()} }

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return &time.ParseError{Layout: "2006-01-02", Value: s, Message: ": expected a date"}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var tm time.Time
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&tm); err != nil {
		return err
	}
	d.Time = tm.UTC()
	return nil
}

// StringList decodes a JSON array whose entries may be plain strings or
// select-box objects such as {"value": "Tents", "label": "Tents"} or
// {"path": "/uploads/a.jpg"}. Empty entries are dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = splitCSV(s)
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(StringList, 0, len(raw))
	for _, item := range raw {
		if s := stringFromItem(item); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func stringFromItem(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]any
	if err := json.Unmarshal(item, &obj); err != nil {
		return ""
	}
	for _, k := range []string{"value", "path", "url", "label"} {
		if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// IDList decodes either an array of hex ids or a comma-separated string.
// Entries that are not valid ObjectIDs are silently dropped.
type IDList []primitive.ObjectID

func (l *IDList) UnmarshalJSON(b []byte) error {
	var items StringList
	if err := items.UnmarshalJSON(b); err != nil {
		return err
	}
	out := make(IDList, 0, len(items))
	for _, s := range items {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			out = append(out, id)
		}
	}
	*l = out
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Timestamps is embedded by every document.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Touch sets UpdatedAt, and CreatedAt if unset.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
