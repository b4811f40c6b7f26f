package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-launchgrid/config"
)

func TestPrintLayout(t *testing.T) {
	layout, err := config.DefaultConfig().Build()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printLayout(&buf, layout)
	out := buf.String()

	for _, want := range []string{
		"controller: in launchpad (Launchpad Mini), out launchpad (Launchpad Mini), clock clock (KRONOS)",
		"A  patterns",
		"B  one-shots",
		"C  routers",
		"kronos-router",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var row0, row7 string
	for _, l := range lines {
		if strings.HasPrefix(l, "0  ") {
			row0 = l
		}
		if strings.HasPrefix(l, "7  ") {
			row7 = l
		}
	}
	if strings.Count(row0, "B:") != 4 || strings.Count(row0, "A:") != 4 {
		t.Errorf("row 0 owners wrong: %q", row0)
	}
	if strings.Count(row7, "C:") != 8 {
		t.Errorf("row 7 owners wrong: %q", row7)
	}
}

func TestPrintEndpoints(t *testing.T) {
	var buf bytes.Buffer
	printEndpoints(&buf, namedEndpoints{In: []string{"Launchpad Mini", "KRONOS"}})
	out := buf.String()
	if !strings.Contains(out, "[0] Launchpad Mini  <- launchpad") {
		t.Errorf("launchpad not marked:\n%s", out)
	}
	if !strings.Contains(out, "[1] KRONOS\n") {
		t.Errorf("missing KRONOS:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Errorf("empty output list not reported:\n%s", out)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	if err := writeDefault(path, false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeDefault(path, false); err == nil {
		t.Error("second write without force should fail")
	}
	if err := os.WriteFile(path, []byte("windows: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := writeDefault(path, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config invalid: %v", err)
	}
}
