package aliases_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/credshell/credshell/internal/aliases"
)

func writeAliasFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aliases")
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return p
}

func Test_Lookup(t *testing.T) {
	path := writeAliasFile(t, `[prod]
12345678912 my-production-role --duration 900

[dev]
arn:aws:iam::98765432100:role/dev-admin
`)
	ttests := map[string]struct {
		name     string
		want     string
		wantFind bool
	}{
		"exact match returns the literal body": {
			name:     "prod",
			want:     "12345678912 my-production-role --duration 900",
			wantFind: true,
		},
		"arn body": {
			name:     "dev",
			want:     "arn:aws:iam::98765432100:role/dev-admin",
			wantFind: true,
		},
		"absent name": {
			name: "staging",
		},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			got, ok := aliases.New(path).Lookup(tt.name)
			if ok != tt.wantFind {
				t.Fatalf("found=%v, wanted %v", ok, tt.wantFind)
			}
			if got != tt.want {
				t.Errorf("got %q, wanted %q", got, tt.want)
			}
		})
	}
}

func Test_Lookup_missing_file_is_absent(t *testing.T) {
	if _, ok := aliases.New(filepath.Join(t.TempDir(), "nope")).Lookup("prod"); ok {
		t.Error("missing file should not resolve aliases")
	}
}

func Test_List_sorted(t *testing.T) {
	path := writeAliasFile(t, `[zeta]
1 role-z
[alpha]
2 role-a
`)
	got, err := aliases.New(path).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "alpha" || got[1].Name != "zeta" {
		t.Errorf("got %+v, wanted alpha then zeta", got)
	}
	if got[0].Args != "2 role-a" {
		t.Errorf("got %q", got[0].Args)
	}
}
