package runner

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestExecRunner(t *testing.T) {
	requireCommand(t, "sh")

	tests := []struct {
		name       string
		stdin      string
		script     string
		wantStdout string
		wantStderr string
		wantCode   int
		wantErr    bool
	}{
		{
			name:       "echo stdin",
			stdin:      "const x = 1;\n",
			script:     "cat",
			wantStdout: "const x = 1;\n",
		},
		{
			name:       "stderr and exit code",
			script:     "echo bad >&2; exit 3",
			wantStderr: "bad\n",
			wantCode:   3,
			wantErr:    true,
		},
		{
			name:       "stdout kept on failure",
			script:     "printf partial; exit 1",
			wantStdout: "partial",
			wantCode:   1,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecRunner{}.Run(context.Background(), []byte(tt.stdin), "sh", "-c", tt.script)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(res.Stdout) != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", res.Stdout, tt.wantStdout)
			}
			if string(res.Stderr) != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", res.Stderr, tt.wantStderr)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d", res.ExitCode, tt.wantCode)
			}
		})
	}
}

func TestExecRunner_MissingCommand(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), nil, "way2-no-such-command")
	if err == nil {
		t.Fatal("expected error for missing command")
	}
	if res.ExitCode != 127 {
		t.Errorf("exit code = %d, want 127", res.ExitCode)
	}
}

func TestExecRunner_Canceled(t *testing.T) {
	requireCommand(t, "sleep")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (ExecRunner{}).Run(ctx, nil, "sleep", "5"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestFunc(t *testing.T) {
	var gotName string
	var gotArgs []string
	f := Func(func(_ context.Context, stdin []byte, name string, args ...string) (Result, error) {
		gotName, gotArgs = name, args
		return Result{Stdout: stdin}, errors.New("fake")
	})

	res, err := f.Run(context.Background(), []byte("in"), "zig", "fmt", "--stdin")
	if err == nil || err.Error() != "fake" {
		t.Errorf("err = %v", err)
	}
	if string(res.Stdout) != "in" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if gotName != "zig" || len(gotArgs) != 2 || gotArgs[1] != "--stdin" {
		t.Errorf("called with %q %q", gotName, gotArgs)
	}
}
