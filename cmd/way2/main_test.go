package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cyuria/way2/internal/testutil"
)

const tree = `
-- wayland.xml --
<protocol name="wayland">
  <copyright>Copyright 2008 Example</copyright>
  <interface name="wl_display" version="1">
    <request name="sync">
      <arg name="callback" type="new_id" interface="wl_callback"/>
    </request>
    <event name="error">
      <arg name="code" type="uint" enum="error"/>
    </event>
    <enum name="error">
      <entry name="invalid_object" value="0"/>
    </enum>
  </interface>
  <interface name="wl_shell" version="1"/>
</protocol>
-- stable/viewporter/viewporter.xml --
<protocol name="viewporter">
  <interface name="wp_viewporter" version="1"/>
</protocol>
-- staging/junk/junk.xml --
<junk/>
`

const brokenTree = `
-- wayland.xml --
<protocol name="wayland">
  <interface name="wl_display" version="1">
    <event name="error">
      <arg name="code" type="uint" enum="wl_nothing.error"/>
    </event>
  </interface>
</protocol>
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Gen(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))
	out := filepath.Join(t.TempDir(), "out")

	code, stdout, stderr := runCLI(t, "gen", "--no-format", out, root)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "wrote 4 units for 2 protocols") {
		t.Errorf("stdout = %q", stdout)
	}
	for _, unit := range []string{"wayland.zig", "viewporter.zig", "types.zig", "proto.zig"} {
		if _, err := os.Stat(filepath.Join(out, unit)); err != nil {
			t.Errorf("%s not written: %v", unit, err)
		}
	}
}

func TestRun_GenIsDefault(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))
	out := filepath.Join(t.TempDir(), "out")

	code, _, stderr := runCLI(t, "--no-format", "--skip-interface", "wl_shell", out, root)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	proto, err := os.ReadFile(filepath.Join(out, "proto.zig"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(proto), "wl_shell") {
		t.Error("skipped interface present in index")
	}
}

func TestRun_GenMismatchWarn(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))
	out := filepath.Join(t.TempDir(), "out")

	code, _, stderr := runCLI(t, "gen", "--no-format", "--on-mismatch", "warn", out, root)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "warning: not_protocol") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_GenFormatter(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))
	out := filepath.Join(t.TempDir(), "out")

	code, _, stderr := runCLI(t, "gen", "--formatter", "way2-no-such-formatter --stdin", out, root)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "format_failed") {
		t.Errorf("stderr = %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written despite formatter failure")
	}
}

func TestRun_GenErrors(t *testing.T) {
	broken := testutil.TempTree(t, testutil.ParseArchive(brokenTree))
	out := filepath.Join(t.TempDir(), "out")

	code, _, stderr := runCLI(t, "gen", "--no-format", out, broken)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, `unresolved_reference: document "wayland": interface "wl_display"`) {
		t.Errorf("stderr = %q", stderr)
	}

	code, _, stderr = runCLI(t, "gen")
	if code != 1 || !strings.Contains(stderr, "out_dir is required") {
		t.Errorf("exit %d, stderr = %q", code, stderr)
	}

	code, _, stderr = runCLI(t, "gen", "--no-format", "--on-mismatch", "ignore", out, broken)
	if code != 1 || !strings.Contains(stderr, "on_mismatch") {
		t.Errorf("exit %d, stderr = %q", code, stderr)
	}
}

func TestRun_Check(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))

	code, stdout, stderr := runCLI(t, "check", "--no-format", root)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	for _, want := range []string{"✓ 3 documents, 2 protocols, 3 interfaces", "✓ 4 units compiled"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_List(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))

	code, stdout, stderr := runCLI(t, "list", root)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 documents, got:\n%s", stdout)
	}
	wants := []string{"core", "stable", "staging"}
	for i, want := range wants {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want category %s", i, lines[i], want)
		}
	}
	if !strings.HasSuffix(lines[0], filepath.Join(root, "wayland.xml")) {
		t.Errorf("line 0 = %q", lines[0])
	}
}

func TestRun_ConfigFile(t *testing.T) {
	root := testutil.TempTree(t, testutil.ParseArchive(tree))
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "way2.toml")
	body := "out_dir = \"gen\"\nroots = [\"" + filepath.ToSlash(root) + "\"]\nno_format = true\nindex_unit = \"index\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "gen", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("exit %d\nstderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "gen", "index.zig")); err != nil {
		t.Errorf("index unit not written next to config: %v", err)
	}

	code, _, _ = runCLI(t, "gen", "--config", filepath.Join(dir, "missing.toml"))
	if code == 0 {
		t.Error("expected failure for missing config file")
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "0.1.0") && !strings.HasPrefix(stdout, "v") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"way2", "check", "list", "version"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_BadFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "list", "--no-such-flag")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "no-such-flag") {
		t.Errorf("stderr = %q", stderr)
	}
}
