// prompt reads the two documented interactive values, profile name and
// MFA code, from standard input. A closed input stream is equivalent to
// an empty value; callers treat that as a missing argument.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Line prints label and reads a single trimmed line from r.
func Line(r io.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	scanned := bufio.NewScanner(r)
	if !scanned.Scan() {
		if err := scanned.Err(); err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanned.Text()), nil
}

// MaskedLine reads without echo when stdin is a terminal, falling back
// to a plain line read otherwise (pipes, tests).
func MaskedLine(w io.Writer, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return Line(os.Stdin, w, label)
	}
	fmt.Fprintf(w, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
