package main

import (
	"testing"

	"github.com/amantus-ai/cast/pkg/export"
)

func TestFormatFromExtensionCoversFullList(t *testing.T) {
	cases := map[string]string{
		"out.cast": "cast",
		"out.svg":  "svg",
		"out.HTML": "html",
		"out.txt":  "txt",
		"out.json": "json",
		"out.gif":  "gif",
		"out.mp4":  "mp4",
		"out.webm": "webm",
	}
	for path, want := range cases {
		if got := formatFromExtension(path); got != want {
			t.Errorf("formatFromExtension(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFormatFromExtensionUnknown(t *testing.T) {
	if got := formatFromExtension("out.bin"); got != "" {
		t.Fatalf("expected empty format for unknown extension, got %q", got)
	}
}

func TestDefaultOutputPathReplacesExtension(t *testing.T) {
	got := defaultOutputPath("session.cast", "svg")
	if got != "session.svg" {
		t.Fatalf("defaultOutputPath = %q, want session.svg", got)
	}
}

func TestParseTargetKind(t *testing.T) {
	if k, ok := parseTargetKind("middle"); !ok || k != export.TargetMiddle {
		t.Fatalf("parseTargetKind(middle) = %v, %v", k, ok)
	}
	if _, ok := parseTargetKind("nonsense"); ok {
		t.Fatal("expected parseTargetKind to reject an unknown target name")
	}
}

func TestTitleOrDefaultFallsBackToBasename(t *testing.T) {
	if got := titleOrDefault("", "/tmp/session.cast"); got != "session.cast" {
		t.Fatalf("titleOrDefault fallback = %q", got)
	}
	if got := titleOrDefault("demo", "/tmp/session.cast"); got != "demo" {
		t.Fatalf("titleOrDefault override = %q", got)
	}
}
