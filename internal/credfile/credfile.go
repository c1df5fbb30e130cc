// credfile lists named sections of the provider-native shared
// credentials file. Read-only, no session state involved.
package credfile

import (
	"sort"

	ini "gopkg.in/ini.v1"
)

// ListProfiles returns the named profile sections of the credentials
// file at path.
func ListProfiles(path string) ([]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		out = append(out, sec.Name())
	}
	sort.Strings(out)
	return out, nil
}
