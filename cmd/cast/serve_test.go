package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestBindListenerLocalPrintsAddress(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	l, err := bindListener(cmd, "127.0.0.1:0", false)
	if err != nil {
		t.Fatalf("bindListener: %v", err)
	}
	defer l.Close()

	if out.Len() == 0 {
		t.Fatal("expected a banner announcing the bound address")
	}
	if l.Addr().String() == "" {
		t.Fatal("expected a concrete bound address")
	}
}
