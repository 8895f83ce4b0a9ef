package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notwillk/databundle/internal/logger"
)

// run executes the CLI with fresh flag values, since cobra keeps them in package state.
func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	showVersion, verbose = false, false
	logFormat = "text"
	buildOutputFile, buildInvalid = "", ""
	configSchemaOutputFile = ""
	t.Cleanup(func() { logger.Init("text", slog.LevelInfo) })

	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func setupRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "001.json"), []byte(`{"surah_number": 1}`), 0644)
	os.WriteFile(filepath.Join(dir, "bare.json"), []byte(`"a": 1, "b": 2`), 0644)
	os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"a": }`), 0644)
	return dir
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, "databundle ") {
		t.Errorf("stdout = %q, want version line", stdout)
	}
}

func TestBuildCommand(t *testing.T) {
	dir := setupRoot(t)

	code, stdout, stderr := run(t, "build", dir)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	outFile := filepath.Join(dir, "data.js")
	if want := "wrote " + outFile + " with 2 entries\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "bad.json") || !strings.Contains(stderr, "level=WARN") {
		t.Errorf("stderr should carry a warning for bad.json, got %q", stderr)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRootWithArgumentBuilds(t *testing.T) {
	dir := setupRoot(t)

	code, stdout, stderr := run(t, dir)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "with 2 entries") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestBuildCommand_OutputFlag(t *testing.T) {
	dir := setupRoot(t)
	outFile := filepath.Join(t.TempDir(), "out.js")

	code, _, stderr := run(t, "build", dir, "-o", outFile, "--invalid", "silent")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stderr != "" {
		t.Errorf("silent mode wrote to stderr: %q", stderr)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("output not written to -o path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.js")); !os.IsNotExist(err) {
		t.Error("default output should not be written when -o is given")
	}
}

func TestBuildCommand_InvalidFail(t *testing.T) {
	dir := setupRoot(t)

	code, _, stderr := run(t, "build", dir, "--invalid", "fail")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "bad.json") {
		t.Errorf("stderr = %q, want it to name bad.json", stderr)
	}
}

func TestBuildCommand_JSONLogs(t *testing.T) {
	dir := setupRoot(t)

	code, _, stderr := run(t, "build", dir, "--log-format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(stderr)), &rec); err != nil {
		t.Fatalf("stderr is not a JSON log record: %v\n%s", err, stderr)
	}
	if rec["file"] != "bad.json" {
		t.Errorf("file = %v, want bad.json", rec["file"])
	}
	if rec["wrapped_error"] == nil {
		t.Error("expected wrapped_error attribute")
	}
}

func TestBuildCommand_UnknownLogFormat(t *testing.T) {
	code, _, stderr := run(t, "build", t.TempDir(), "--log-format", "xml")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "log format") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBuildCommand_MissingRoot(t *testing.T) {
	code, _, stderr := run(t, "build", filepath.Join(t.TempDir(), "missing"))
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stderr == "" {
		t.Error("expected an error message on stderr")
	}
}

func TestBuildCommand_BadConfig(t *testing.T) {
	dir := setupRoot(t)
	os.WriteFile(filepath.Join(dir, "databundle.yaml"), []byte("indent: 99\n"), 0644)

	code, _, stderr := run(t, "build", dir)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "loading config") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigSchemaCommand(t *testing.T) {
	code, stdout, stderr := run(t, "config-schema")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if doc["title"] != "databundle configuration" {
		t.Errorf("title = %v", doc["title"])
	}
}

func TestConfigSchemaCommand_OutputFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "schema.json")
	code, stdout, stderr := run(t, "config-schema", "-o", outFile)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if want := "wrote " + outFile + "\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("schema not written: %v", err)
	}
}

func TestBuildCommand_OutputToStdout(t *testing.T) {
	dir := setupRoot(t)

	code, stdout, stderr := run(t, "build", dir, "-o", "-", "--invalid", "silent")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "// Auto-generated: embeds all JSON files\nwindow.QuranData = {\n") {
		t.Errorf("stdout should carry the script, got %q", stdout)
	}
	if strings.Contains(stdout, "wrote ") {
		t.Errorf("summary line mixed into the script: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.js")); !os.IsNotExist(err) {
		t.Error("no file should be written for -o -")
	}
}

func TestConfigSchemaCommand_DashIsStdout(t *testing.T) {
	code, stdout, stderr := run(t, "config-schema", "-o", "-")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !json.Valid([]byte(stdout)) {
		t.Errorf("stdout is not JSON: %q", stdout)
	}
}
