package main

import (
	"strings"
	"testing"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

func TestPrintInfoIncludesOptionalFieldsOnlyWhenPresent(t *testing.T) {
	var buf strings.Builder
	printInfo(&buf, eventlog.Info{
		Header:     eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24},
		EventCount: 3,
		Duration:   1.5,
	})

	out := buf.String()
	for _, want := range []string{"version: 2", "size: 80x24", "duration: 1.500s", "events: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	for _, absent := range []string{"title:", "command:", "recorded at:", "idle time limit:"} {
		if strings.Contains(out, absent) {
			t.Errorf("expected output to omit %q when unset, got %q", absent, out)
		}
	}
}

func TestPrintInfoIncludesTitleAndCommandWhenSet(t *testing.T) {
	var buf strings.Builder
	printInfo(&buf, eventlog.Info{
		Header: eventlog.Header{
			Version: eventlog.Version, Width: 80, Height: 24,
			Title: "demo", Command: "bash",
		},
	})

	out := buf.String()
	if !strings.Contains(out, "title: demo") || !strings.Contains(out, "command: bash") {
		t.Fatalf("expected title and command to be printed, got %q", out)
	}
}
