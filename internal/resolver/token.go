// resolver
//
// Classifies raw subcommand arguments against a small fixed grammar and
// builds the structured requests the transition engine consumes. The
// classifier is a single left-to-right pass with no backtracking; when a
// later token fills a slot already taken by an earlier token of the same
// shape, the later one wins.
package resolver

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrMissingArgument = errors.New("missing argument")
	ErrRoleUnresolved  = errors.New("role specification unresolved")
)

// roleArnShape is the classifier shape only; the slot applies the
// stricter 12-digit-account invariant on apply.
var (
	roleArnShape = regexp.MustCompile(`^arn:aws:iam::\d+:role/.+$`)
	digitsShape  = regexp.MustCompile(`^\d+$`)
)

type TokenKind int

const (
	KindFlag TokenKind = iota
	KindRoleArn
	KindAccountID
	KindFree
)

type Token struct {
	Kind  TokenKind
	Name  string // flag name, without dashes
	Value string
}

// Grammar declares the flags a subcommand accepts; the bool marks
// whether the flag consumes a following value token. Only --silent is a
// bare literal anywhere in the surface.
type Grammar struct {
	Flags map[string]bool
}

// Classify tags each raw argument in priority order: declared flag,
// role-ARN shape, all-digits, free token.
func Classify(args []string, g Grammar) ([]Token, error) {
	var out []Token
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if takesValue, ok := g.Flags[tok]; ok {
			name := tok[2:]
			if !takesValue {
				out = append(out, Token{Kind: KindFlag, Name: name})
				continue
			}
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag %s has no value, %w", tok, ErrMissingArgument)
			}
			i++
			out = append(out, Token{Kind: KindFlag, Name: name, Value: args[i]})
			continue
		}
		switch {
		case roleArnShape.MatchString(tok):
			out = append(out, Token{Kind: KindRoleArn, Value: tok})
		case digitsShape.MatchString(tok):
			out = append(out, Token{Kind: KindAccountID, Value: tok})
		default:
			out = append(out, Token{Kind: KindFree, Value: tok})
		}
	}
	return out, nil
}
