package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	units := splitLines("a\nb\nc")
	if len(units) != 3 || units[0] != "a" || units[2] != "c" {
		t.Errorf("splitLines = %v", units)
	}
	// A trailing newline does not add an empty unit.
	units = splitLines("a\nb\n")
	if len(units) != 2 {
		t.Errorf("splitLines with trailing newline = %v", units)
	}
}

func TestSplitChunks(t *testing.T) {
	units := splitChunks("héllo", 2)
	if len(units) != 3 || units[0] != "hé" || units[2] != "o" {
		t.Errorf("splitChunks = %v", units)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Log.Verbosity != 0 || cfg.Store.Path != "" {
		t.Errorf("missing file config = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atp.toml")
	src := "[log]\nverbosity = 2\n[store]\npath = \"/tmp/p.db\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Log.Verbosity != 2 || cfg.Store.Path != "/tmp/p.db" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pipe.atp")
	dst := filepath.Join(dir, "pipe.atpbc")
	if err := os.WriteFile(src, []byte("atb Banana;\nrpt 2;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"convert", src, dst})
	cmd.SetOut(new(bytes.Buffer))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert: %v", err)
	}

	back, err := readPipelineFile(dst)
	if err != nil {
		t.Fatalf("readPipelineFile: %v", err)
	}
	if len(back) != 2 || back[0].Mnemonic() != "atb" {
		t.Errorf("converted pipeline = %v instructions", len(back))
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	pipe := filepath.Join(dir, "pipe.atp")
	input := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(pipe, []byte("tua;\nate '!';\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(input, []byte("hey"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", pipe, input})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimRight(out.String(), "\n"); got != "HEY!" {
		t.Errorf("run output = %q", got)
	}
}

func TestRunCommandMissingFileReportsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.atp")

	var errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", missing})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(&errOut)
	if err := cmd.Execute(); err == nil {
		t.Fatal("run on a missing pipeline file succeeded")
	}
	if !strings.Contains(errOut.String(), "nope.atp") {
		t.Errorf("stderr does not name the failing file:\n%s", errOut.String())
	}
}

func TestTokensCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"tokens"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("tokens: %v", err)
	}
	if !strings.Contains(out.String(), "atb") || !strings.Contains(out.String(), "0x34") {
		t.Errorf("tokens output missing entries:\n%s", out.String())
	}
}
