// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package extcmd

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("  gmt gmtselect in.lli -Dl  ")
	if err != nil {
		t.Fatalf("Parse(...) error = %v, want nil", err)
	}
	want := Command{Name: "gmt", Args: []string{"gmtselect", "in.lli", "-Dl"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) mismatch (-want +got):\n%s", diff)
	}
	if got.String() != "gmt gmtselect in.lli -Dl" {
		t.Errorf("c.String() = %q", got.String())
	}

	if _, err := Parse(" "); err == nil {
		t.Errorf("Parse(\" \") error = nil, want non-nil")
	}
}

func TestRunner_Run(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	r := &Runner{Dir: dir}

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"success", Command{Name: "sh", Args: []string{"-c", "true"}}, nil},
		{"non-zero exit", Command{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}}, ErrToolFailed},
		{"not found", Command{Name: "no-such-tool-s2floes"}, ErrToolFailed},
		{
			"output written",
			Command{Name: "sh", Args: []string{"-c", "echo 1 > out.txt"}, Outputs: []string{"out.txt"}},
			nil,
		},
		{
			"output missing",
			Command{Name: "sh", Args: []string{"-c", "true"}, Outputs: []string{"never.txt"}},
			ErrToolFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Run(context.Background(), tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("r.Run(%v) error = %v, want %v", tt.cmd, err, tt.wantErr)
			}
		})
	}
}

func TestRunner_StderrInError(t *testing.T) {
	requireShell(t)
	r := &Runner{}
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 1"}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("r.Run(...) error = %v, want stderr tail", err)
	}
}

func TestRunner_Stdout(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	r := &Runner{Dir: dir}
	c := Command{
		Name:    "sh",
		Args:    []string{"-c", "echo 1 2 3"},
		Stdout:  "out.lli",
		Outputs: []string{"out.lli"},
	}
	if err := r.Run(context.Background(), c); err != nil {
		t.Fatalf("r.Run(...) error = %v, want nil", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "out.lli"))
	if err != nil {
		t.Fatalf("os.ReadFile(...) error = %v, want nil", err)
	}
	if got := strings.TrimSpace(string(b)); got != "1 2 3" {
		t.Errorf("stdout = %q, want %q", got, "1 2 3")
	}
}

func TestRunner_Timeout(t *testing.T) {
	requireShell(t)
	r := &Runner{Timeout: 50 * time.Millisecond}
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exec sleep 5"}})
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("r.Run(sleep) error = %v, want %v", err, ErrToolFailed)
	}
}
