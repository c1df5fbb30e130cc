package samltool_test

import (
	"testing"

	"github.com/credshell/credshell/internal/samltool"
)

func Test_ParseEnv(t *testing.T) {
	raw := `
export AWS_ACCESS_KEY_ID="AKIA123"
AWS_SECRET_ACCESS_KEY='secret'
AWS_SESSION_TOKEN=token==trailing
# a comment the helper printed
not a pair
`
	env := samltool.ParseEnv(raw)

	ttests := map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIA123",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"AWS_SESSION_TOKEN":     "token==trailing",
	}
	for key, want := range ttests {
		if got := env[key]; got != want {
			t.Errorf("%s: got %q, wanted %q", key, got, want)
		}
	}
	if _, ok := env["not a pair"]; ok {
		t.Errorf("line without delimiter should be skipped")
	}
}
