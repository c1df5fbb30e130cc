// session
//
// Holds the single credential slot for the process: the current identity
// source, the elevation layer and the temporary credential triple issued
// by the last successful provider call. Only the transition engine may
// mutate it, and only through Apply/Clear.
package session

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"
)

var (
	ErrPartialCredentials = errors.New("credential triple must be all present or all absent")
	ErrRoleArnInvalid     = errors.New("assumed role arn malformed")
)

// RoleArnPattern matches arn:<partition>:iam::<12-digit-account>:role/<name>.
var RoleArnPattern = regexp.MustCompile(`^arn:[a-zA-Z0-9-]+:iam::\d{12}:role/.+$`)

type Layer int

const (
	Unauthenticated Layer = iota
	BaseValidated
	SessionTokenLayer
	RoleAssumed
)

func (l Layer) String() string {
	switch l {
	case BaseValidated:
		return "base"
	case SessionTokenLayer:
		return "session-token"
	case RoleAssumed:
		return "assumed-role"
	default:
		return "none"
	}
}

func ParseLayer(s string) Layer {
	switch s {
	case "base":
		return BaseValidated
	case "session-token":
		return SessionTokenLayer
	case "assumed-role":
		return RoleAssumed
	default:
		return Unauthenticated
	}
}

type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentityProfile
	IdentityStaticKeys
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityProfile:
		return "profile"
	case IdentityStaticKeys:
		return "static"
	default:
		return "none"
	}
}

type Identity struct {
	Kind    IdentityKind
	Profile string
}

// Snapshot is a full read-only copy of the slot. It doubles as the patch
// type for Apply: a transition constructs the complete next state before
// any field is written.
type Snapshot struct {
	Identity Identity
	Layer    Layer

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	AccountID string
	CallerArn string
	UserID    string

	SessionExpiry time.Time
	MfaExpiry     time.Time

	AssumedRoleArn string
}

// HasCredentials reports whether the secret triple is present.
func (s Snapshot) HasCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != "" && s.SessionToken != ""
}

func (s Snapshot) validate() error {
	all := s.AccessKeyID != "" && s.SecretAccessKey != "" && s.SessionToken != ""
	none := s.AccessKeyID == "" && s.SecretAccessKey == "" && s.SessionToken == ""
	if !all && !none {
		return ErrPartialCredentials
	}
	if s.Layer == RoleAssumed {
		if !RoleArnPattern.MatchString(s.AssumedRoleArn) {
			return fmt.Errorf("%q, %w", s.AssumedRoleArn, ErrRoleArnInvalid)
		}
	}
	return nil
}

// Slot is the process-wide credential state. The mutex keeps the
// all-or-nothing apply/snapshot discipline intact should callers ever
// run transitions concurrently.
type Slot struct {
	mu  sync.Mutex
	cur Snapshot
}

func New() *Slot {
	return &Slot{}
}

func (s *Slot) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Slot) CurrentLayer() Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Layer
}

// Apply replaces the slot state with next, or leaves it untouched when
// next violates an invariant.
func (s *Slot) Apply(next Snapshot) error {
	if err := next.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = next
	return nil
}

// Clear resets every field. It cannot fail and is idempotent.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Snapshot{}
}
