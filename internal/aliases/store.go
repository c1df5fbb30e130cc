// aliases
//
// Read-only store over the user-editable alias file: `[name]` headers,
// each followed by one literal argument line for assume-role. The file
// is re-read on every lookup so edits take effect immediately.
package aliases

import (
	"errors"
	"sort"

	ini "gopkg.in/ini.v1"
)

var ErrAliasFileUnreadable = errors.New("alias file unreadable")

type Entry struct {
	Name string
	Args string
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Alias bodies carry no '=' so AllowBooleanKeys keeps the whole line as
// a single key name, which load() hands back verbatim. The delimiter
// set must exclude ':' or ARN bodies would be split.
func (s *Store) load() (*ini.File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, KeyValueDelimiters: "="}, s.path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Lookup returns the stored argument string for an exact section-name
// match. A missing file or missing section is simply "absent"; bodies
// are not validated here, malformed ones surface later in the resolver.
func (s *Store) Lookup(name string) (string, bool) {
	cfg, err := s.load()
	if err != nil {
		return "", false
	}
	if !cfg.HasSection(name) || name == ini.DefaultSection {
		return "", false
	}
	keys := cfg.Section(name).KeyStrings()
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}

// List returns every alias entry, sorted by name.
func (s *Store) List() ([]Entry, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, ErrAliasFileUnreadable
	}
	var out []Entry
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		args := ""
		if keys := sec.KeyStrings(); len(keys) > 0 {
			args = keys[0]
		}
		out = append(out, Entry{Name: sec.Name(), Args: args})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
