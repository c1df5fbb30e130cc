package cmd_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/credshell/credshell/cmd"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	b := new(bytes.Buffer)
	o := new(bytes.Buffer)
	root := cmd.RootCmd
	// RootCmd is shared across tests; reset any sticky help flag left
	// by a previous "--help" invocation so commands actually run.
	for _, c := range root.Commands() {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
	root.SetArgs(args)
	root.SetErr(b)
	root.SetOut(o)
	err := root.Execute()
	errOut, _ := io.ReadAll(b)
	out, _ := io.ReadAll(o)
	return string(out), string(errOut), err
}

func Test_helpers_for_command(t *testing.T) {
	ttests := map[string]struct{}{
		"clear":             {},
		"validate":          {},
		"set-creds":         {},
		"get-session-token": {},
		"mfa":               {},
		"mfa-validate":      {},
		"assume-role":       {},
		"saml-login":        {},
		"list-creds":        {},
		"list-aliases":      {},
		"version":           {},
	}
	for name := range ttests {
		t.Run(name, func(t *testing.T) {
			out, errOut, execErr := execute(t, name, "--help")
			if execErr != nil {
				t.Fatalf("got %v, wanted nil", execErr)
			}
			if len(errOut) > 0 {
				t.Fatal("got err, wanted nil")
			}
			if len(out) <= 0 {
				t.Fatalf("got empty, wanted a help message")
			}
		})
	}
}

func Test_clear_exports_unset_lines(t *testing.T) {
	out, _, err := execute(t, "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "unset AWS_ACCESS_KEY_ID") {
		t.Errorf("clear should emit unset lines, got: %s", out)
	}
}

func Test_list_creds_reads_named_sections(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials")
	content := "[default]\naws_access_key_id = AKIA123\n\n[work]\naws_access_key_id = AKIA456\n"
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "list-creds", "--file", p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "work") || !strings.Contains(out, "default") {
		t.Errorf("got %q, wanted both section names", out)
	}
}

func Test_list_aliases_reads_alias_file(t *testing.T) {
	p := filepath.Join(t.TempDir(), "aliases")
	if err := os.WriteFile(p, []byte("[prod]\n12345678912 my-production-role --duration 900\n"), 0600); err != nil {
		t.Fatal(err)
	}
	viper.Set("alias-file", p)
	defer viper.Set("alias-file", "")

	out, _, err := execute(t, "list-aliases")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "prod") || !strings.Contains(out, "my-production-role") {
		t.Errorf("got %q, wanted the prod alias", out)
	}
}
