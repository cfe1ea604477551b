package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	// FormatAuto selects a format from the output path extension.
	FormatAuto Format = iota
	// FormatText is human-readable text, one event per line.
	FormatText
	// FormatNDJSON is newline-delimited JSON.
	FormatNDJSON
)

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

func formatNDJSON(ev Event) []byte {
	type jsonEvent struct {
		Time     string `json:"time"`
		Seq      uint64 `json:"seq"`
		Kind     string `json:"kind"`
		Scope    string `json:"scope"`
		SpanID   uint64 `json:"span_id"`
		ParentID uint64 `json:"parent_id,omitempty"`
		Name     string `json:"name"`
		Detail   string `json:"detail,omitempty"`
	}

	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
	}

	data, _ := json.Marshal(j)
	data = append(data, '\n')
	return data
}

func formatText(ev Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %6d %-6s %-6s span=%d", ev.Time.Format("15:04:05.000000"), ev.Seq, ev.Kind, ev.Scope, ev.SpanID)
	if ev.ParentID != 0 {
		fmt.Fprintf(&sb, " parent=%d", ev.ParentID)
	}
	fmt.Fprintf(&sb, " %s", ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " // %s", ev.Detail)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
