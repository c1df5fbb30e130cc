package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/credshell/credshell/internal/session"
)

func fullTriple(layer session.Layer) session.Snapshot {
	return session.Snapshot{
		Layer:           layer,
		AccessKeyID:     "AKIA123",
		SecretAccessKey: "secret",
		SessionToken:    "token",
	}
}

func Test_Apply_rejects_partial_triples(t *testing.T) {
	ttests := map[string]struct {
		next      session.Snapshot
		expectErr error
	}{
		"all absent is fine": {
			next: session.Snapshot{Layer: session.BaseValidated},
		},
		"all present is fine": {
			next: fullTriple(session.SessionTokenLayer),
		},
		"missing secret key rejected": {
			next:      session.Snapshot{Layer: session.SessionTokenLayer, AccessKeyID: "AKIA123", SessionToken: "token"},
			expectErr: session.ErrPartialCredentials,
		},
		"missing session token rejected": {
			next:      session.Snapshot{Layer: session.SessionTokenLayer, AccessKeyID: "AKIA123", SecretAccessKey: "secret"},
			expectErr: session.ErrPartialCredentials,
		},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			s := session.New()
			err := s.Apply(tt.next)
			if tt.expectErr == nil && err != nil {
				t.Fatalf("got %v, wanted nil", err)
			}
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("got %v, wanted %v", err, tt.expectErr)
				}
				if s.Snapshot().AccessKeyID != "" {
					t.Errorf("slot mutated by failed apply")
				}
			}
		})
	}
}

func Test_Apply_enforces_role_arn_shape(t *testing.T) {
	ttests := map[string]struct {
		arn       string
		expectErr bool
	}{
		"canonical arn accepted":    {arn: "arn:aws:iam::123456789012:role/ops", expectErr: false},
		"gov partition accepted":    {arn: "arn:aws-us-gov:iam::123456789012:role/ops", expectErr: false},
		"short account rejected":    {arn: "arn:aws:iam::1234:role/ops", expectErr: true},
		"missing role name":         {arn: "arn:aws:iam::123456789012:role/", expectErr: true},
		"empty arn with role layer": {arn: "", expectErr: true},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			next := fullTriple(session.RoleAssumed)
			next.AssumedRoleArn = tt.arn
			err := session.New().Apply(next)
			if tt.expectErr && !errors.Is(err, session.ErrRoleArnInvalid) {
				t.Errorf("got %v, wanted ErrRoleArnInvalid", err)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("got %v, wanted nil", err)
			}
		})
	}
}

func Test_Clear_is_idempotent(t *testing.T) {
	s := session.New()
	full := fullTriple(session.SessionTokenLayer)
	full.MfaExpiry = time.Now().Add(time.Hour)
	if err := s.Apply(full); err != nil {
		t.Fatal(err)
	}

	s.Clear()
	first := s.Snapshot()
	s.Clear()
	second := s.Snapshot()

	if first != second {
		t.Errorf("clear not idempotent: %+v vs %+v", first, second)
	}
	if first != (session.Snapshot{}) {
		t.Errorf("clear left fields populated: %+v", first)
	}
	if first.Layer != session.Unauthenticated {
		t.Errorf("got layer %v, wanted Unauthenticated", first.Layer)
	}
}

func Test_Layer_string_round_trip(t *testing.T) {
	for _, l := range []session.Layer{session.Unauthenticated, session.BaseValidated, session.SessionTokenLayer, session.RoleAssumed} {
		if got := session.ParseLayer(l.String()); got != l {
			t.Errorf("round trip for %v got %v", l, got)
		}
	}
}
