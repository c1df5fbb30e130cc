package engine_test

import (
	"strings"
	"testing"

	"github.com/credshell/credshell/internal/engine"
)

func Test_SessionName(t *testing.T) {
	longArn := "arn:aws:sts::123456789012:assumed-role/" + strings.Repeat("x", 61)
	if len(longArn) != 100 {
		t.Fatalf("fixture arn is %d chars, wanted 100", len(longArn))
	}

	ttests := map[string]struct {
		arn     string
		want    string
		wantLen int
	}{
		"separators become dashes": {
			arn:  "arn:aws:iam::123456789012:user/bob",
			want: "arn-aws-iam--123456789012-user-bob",
		},
		"hundred char arn truncates to exactly 64": {
			arn:     longArn,
			wantLen: 64,
		},
		"empty caller arn falls back to the tool name": {
			arn:  "",
			want: "credshell",
		},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			got := engine.SessionName(tt.arn)
			if tt.want != "" && got != tt.want {
				t.Errorf("got %s, wanted %s", got, tt.want)
			}
			if tt.wantLen != 0 && len(got) != tt.wantLen {
				t.Errorf("got %d chars, wanted %d", len(got), tt.wantLen)
			}
			if strings.ContainsAny(got, ":/") {
				t.Errorf("separators left in session name: %s", got)
			}
		})
	}
}
