package main

import (
	"os"
	"testing"
)

func TestRecordOpenFlags(t *testing.T) {
	if got := recordOpenFlags(false); got&os.O_EXCL == 0 {
		t.Fatalf("expected O_EXCL without --overwrite, got %v", got)
	}
	if got := recordOpenFlags(true); got&os.O_TRUNC == 0 {
		t.Fatalf("expected O_TRUNC with --overwrite, got %v", got)
	}
	if got := recordOpenFlags(true); got&os.O_EXCL != 0 {
		t.Fatalf("expected no O_EXCL with --overwrite, got %v", got)
	}
}
