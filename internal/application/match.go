package application

import "github.com/bmatcuk/doublestar/v4"

// matchAll filters names against a doublestar glob pattern.
func matchAll(pattern string, names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}
