// samltool wraps the external SAML login helper as a subprocess. The
// helper owns the whole federation exchange; this side only passes the
// requested duration through, captures the response text and imports
// the environment the helper exports.
package samltool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

var (
	ErrToolNotFound = errors.New("saml helper not found on PATH")
	ErrLoginFailed  = errors.New("saml helper login failed")
	ErrEnvFailed    = errors.New("saml helper environment export failed")
)

type Tool struct {
	command string
}

func New(command string) *Tool {
	return &Tool{command: command}
}

// Login runs `<helper> login --duration N` and returns the raw response
// text. A non-zero exit is the only hard failure mode; callers parse
// the text best-effort.
func (t *Tool) Login(ctx context.Context, durationSeconds int32) (string, error) {
	if _, err := exec.LookPath(t.command); err != nil {
		return "", fmt.Errorf("%s, %w", t.command, ErrToolNotFound)
	}
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.command, "login", "--duration", strconv.Itoa(int(durationSeconds)))
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s, %w", err, strings.TrimSpace(stderr.String()), ErrLoginFailed)
	}
	return out.String(), nil
}

// ExportEnvironment runs `<helper> env` and parses KEY=VALUE lines, the
// script-sourced form the helper emits for shell consumption.
func (t *Tool) ExportEnvironment(ctx context.Context) (map[string]string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, t.command, "env")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s, %w", err, ErrEnvFailed)
	}
	return ParseEnv(out.String()), nil
}

// ParseEnv accepts both bare KEY=VALUE lines and `export KEY=VALUE`
// lines, with optional quoting around the value.
func ParseEnv(raw string) map[string]string {
	env := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "export "))
		k, v, found := strings.Cut(line, "=")
		if !found || k == "" {
			continue
		}
		env[k] = strings.Trim(v, `"'`)
	}
	return env
}

// KillHanging terminates leftover helper processes from an interrupted
// earlier run.
func (t *Tool) KillHanging() error {
	name := filepath.Base(t.command)
	procs, err := ps.Processes()
	if err != nil {
		return err
	}
	for _, p := range procs {
		if p.Executable() != name || p.Pid() == os.Getpid() {
			continue
		}
		proc, err := os.FindProcess(p.Pid())
		if err != nil {
			continue
		}
		if err := proc.Kill(); err != nil {
			return fmt.Errorf("pid %d: %w", p.Pid(), err)
		}
	}
	return nil
}
