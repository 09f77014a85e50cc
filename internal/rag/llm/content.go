package llm

import (
	"fmt"
	"strings"
)

type ContentKind int

const (
	KindAbsent ContentKind = iota
	KindText
	KindParts
	KindOther
)

// Content is what a chat backend hands back: nothing, a string, a list of parts, or some other value.
type Content struct {
	kind  ContentKind
	text  string
	parts []Part
	other any
}

// Part is one element of a multi-part reply. A part is either text or a raw value.
type Part struct {
	text  string
	raw   any
	isRaw bool
}

func Absent() Content               { return Content{kind: KindAbsent} }
func Text(s string) Content         { return Content{kind: KindText, text: s} }
func Parts(parts ...Part) Content   { return Content{kind: KindParts, parts: parts} }
func Other(v any) Content           { return Content{kind: KindOther, other: v} }
func TextPart(s string) Part        { return Part{text: s} }
func RawPart(v any) Part            { return Part{raw: v, isRaw: true} }
func (c Content) Kind() ContentKind { return c.kind }

func (p Part) String() string {
	if p.isRaw {
		return fmt.Sprint(p.raw)
	}
	return p.text
}

// Normalize flattens the reply to plain text.
// Text is returned as is, parts are joined with single spaces and trimmed, other values are stringified.
func (c Content) Normalize() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindParts:
		pieces := make([]string, 0, len(c.parts))
		for _, p := range c.parts {
			pieces = append(pieces, p.String())
		}
		return strings.TrimSpace(strings.Join(pieces, " "))
	case KindOther:
		if c.other == nil {
			return ""
		}
		return fmt.Sprint(c.other)
	default:
		return ""
	}
}
