package credfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/credshell/credshell/internal/credfile"
)

func Test_ListProfiles(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials")
	content := `[default]
aws_access_key_id = AKIA123
aws_secret_access_key = secret

[work]
aws_access_key_id = AKIA456
aws_secret_access_key = secret2
`
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := credfile.ListProfiles(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "default" || got[1] != "work" {
		t.Errorf("got %v, wanted [default work]", got)
	}
}

func Test_ListProfiles_missing_file(t *testing.T) {
	if _, err := credfile.ListProfiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("wanted an error for a missing credentials file")
	}
}
