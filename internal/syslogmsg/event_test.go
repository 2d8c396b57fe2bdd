package syslogmsg

import (
	"errors"
	"testing"
	"time"
)

func TestParseBaseline(t *testing.T) {
	evt, err := Parse([]byte("<13>Hello"), time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if evt.Severity != 5 {
		t.Errorf("Severity = %d, want 5", evt.Severity)
	}
	if evt.Facility != 1 {
		t.Errorf("Facility = %d, want 1", evt.Facility)
	}
	if evt.Message != "Hello" {
		t.Errorf("Message = %q, want %q", evt.Message, "Hello")
	}
}

func TestParseTrimsLeadingWhitespace(t *testing.T) {
	evt, err := Parse([]byte("<13>   padded"), time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if evt.Message != "padded" {
		t.Errorf("Message = %q, want %q", evt.Message, "padded")
	}
}

func TestParseRFC3164Capture(t *testing.T) {
	evt, err := Parse([]byte("<165>Aug 24 05:34:00 host1 app: msg"), time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if evt.Severity != 5 {
		t.Errorf("Severity = %d, want 5", evt.Severity)
	}
	if evt.Facility != 20 {
		t.Errorf("Facility = %d, want 20", evt.Facility)
	}
	host, ok := evt.Captures.Get("hostname")
	if !ok || host != "host1" {
		t.Errorf("Captures[HOSTNAME] = %q, ok=%v, want host1", host, ok)
	}
	tag, ok := evt.Captures.Get("TAG")
	if !ok || tag != "app" {
		t.Errorf("Captures[TAG] = %q, ok=%v, want app", tag, ok)
	}
}

func TestParseRFC5424Capture(t *testing.T) {
	body := "<34>1 2003-10-11T22:14:15.003Z host app - ID47 - BOM'Hello"
	evt, err := Parse([]byte(body), time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if evt.Severity != 2 {
		t.Errorf("Severity = %d, want 2", evt.Severity)
	}
	if evt.Facility != 4 {
		t.Errorf("Facility = %d, want 4", evt.Facility)
	}
	for key, want := range map[string]string{
		"VER": "1", "HOSTNAME": "host", "APPNAME": "app", "MSGID": "ID47",
	} {
		got, ok := evt.Captures.Get(key)
		if !ok || got != want {
			t.Errorf("Captures[%s] = %q, ok=%v, want %q", key, got, ok, want)
		}
	}
	if _, ok := evt.Captures.Get("SD"); ok {
		t.Errorf("Captures[SD] present, want absent for '-'")
	}
}

func TestParseInvalidFormat(t *testing.T) {
	if _, err := Parse([]byte("no-pri-here"), time.Now(), "10.0.0.1"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseInvalidPriority(t *testing.T) {
	if _, err := Parse([]byte("<ab>body"), time.Now(), "10.0.0.1"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Parse() error = %v, want ErrInvalidPriority", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(nil, time.Now(), "10.0.0.1"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Parse() error = %v, want ErrEmptyInput", err)
	}
}

func TestParseIdempotent(t *testing.T) {
	data := []byte("<13>Hello")
	first, err := Parse(data, time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(data, time.Now(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if first.Severity != second.Severity || first.Facility != second.Facility || first.Message != second.Message {
		t.Errorf("repeated Parse() produced different fields: %+v vs %+v", first, second)
	}
}
