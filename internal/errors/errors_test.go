package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
		{
			name:     "user error with hint",
			err:      NewUserError(`unknown mood "meh"`, "use one of Great, Good, Okay, Hard, Struggling"),
			expected: "Error: unknown mood \"meh\"\n  Hint: use one of Great, Good, Okay, Hard, Struggling",
		},
		{
			name:     "wrapped user error keeps hint",
			err:      fmt.Errorf("logging mood: %w", NewUserError("bad label", "try Okay")),
			expected: "Error: logging mood: bad label\n  Hint: try Okay",
		},
		{
			name:     "user error without hint",
			err:      NewUserError("journey not started", ""),
			expected: "Error: journey not started",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		format string
		args   []interface{}
		want   string
	}{
		{"journey has not started", nil, "Error: journey has not started"},
		{"failed to load %s", []interface{}{"profile"}, "Error: failed to load profile"},
		{"task %d not found in stage %s", []interface{}{7, "legal"}, "Error: task 7 not found in stage legal"},
	}

	for _, tt := range tests {
		if got := Formatf(tt.format, tt.args...); got != tt.want {
			t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.want)
		}
	}
}

const fatalModeEnv = "JOURNEYLINE_FATAL_MODE"

// exitHelper runs this test binary again with mode set, so the code under
// test can call os.Exit without ending the parent test.
func exitHelper(t *testing.T, test, mode string) (int, string) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+test+"$")
	cmd.Env = append(os.Environ(), fatalModeEnv+"="+mode)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, stderr.String()
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), stderr.String()
	default:
		t.Fatalf("helper process failed to run: %v", err)
		return -1, ""
	}
}

func TestFatalExits(t *testing.T) {
	switch os.Getenv(fatalModeEnv) {
	case "err":
		Fatal(errors.New("knowledge base invalid"))
		return
	case "user":
		Fatal(NewUserError("no current user", "run 'journeyline init' or pass --user"))
		return
	case "nil":
		Fatal(nil)
		os.Exit(0)
	case "format":
		Fatalf("stage %s not found for role %s", "ivf", "carrier")
		return
	}

	tests := []struct {
		mode     string
		wantCode int
		want     []string
	}{
		{mode: "err", wantCode: 1, want: []string{"Error: knowledge base invalid"}},
		{mode: "user", wantCode: 1, want: []string{"Error: no current user", "Hint: run 'journeyline init'"}},
		{mode: "nil", wantCode: 0},
		{mode: "format", wantCode: 1, want: []string{"Error: stage ivf not found for role carrier"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			code, stderr := exitHelper(t, "TestFatalExits", tt.mode)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(stderr, w) {
					t.Errorf("stderr = %q, want to contain %q", stderr, w)
				}
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	if got := HintFor(errors.New("plain")); got != "" {
		t.Errorf("HintFor(plain) = %q, want empty", got)
	}
	if got := HintFor(nil); got != "" {
		t.Errorf("HintFor(nil) = %q, want empty", got)
	}
	err := fmt.Errorf("outer: %w", NewUserError("inner", "run init first"))
	if got := HintFor(err); got != "run init first" {
		t.Errorf("HintFor(wrapped) = %q, want %q", got, "run init first")
	}
}
