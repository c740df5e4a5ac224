package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmdPrintsVersion(t *testing.T) {
	version = "1.2.3"
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.Contains(out.String(), "1.2.3") {
		t.Fatalf("expected output to contain the version, got %q", out.String())
	}
}
