package github

import "strings"

// ParseLinkHeader parses an RFC 8288 style Link header into a map from
// relation name to URL. A link whose rel lists several relations is recorded
// under each of them. Malformed entries are skipped.
//
//	<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"
func ParseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	rest := header
	for {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			return links
		}
		end := strings.IndexByte(rest[start:], '>')
		if end < 0 {
			return links
		}
		target := rest[start+1 : start+end]
		rest = rest[start+end+1:]

		// Parameters run until the next link target.
		params := rest
		if next := strings.IndexByte(rest, '<'); next >= 0 {
			params = rest[:next]
		}
		for _, rel := range linkRels(params) {
			if _, seen := links[rel]; !seen {
				links[rel] = target
			}
		}
	}
}

// linkRels extracts the relation names from the parameter part of one link.
func linkRels(params string) []string {
	for _, p := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.TrimRight(value, ", ")
		value = strings.Trim(value, `"`)
		return strings.Fields(strings.ToLower(value))
	}
	return nil
}
