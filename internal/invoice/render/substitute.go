package render

import (
	"regexp"
	"sort"
	"strings"
)

// Substitute replaces every occurrence of each token in tpl with its
// mapped value in a single linear scan. Tokens absent from the template
// are ignored; template text that matches no token passes through
// unchanged. Because the scan never revisits replaced output, a value
// that happens to contain another token's literal text is left alone.
func Substitute(tpl string, values map[string]string) string {
	if len(values) == 0 || tpl == "" {
		return tpl
	}

	tokens := make([]string, 0, len(values))
	for token := range values {
		tokens = append(tokens, token)
	}
	// Longer tokens first so ITEM_DESCRIPTION_12 wins over ITEM_DESCRIPTION_1.
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	pattern := regexp.MustCompile(strings.Join(quoted, "|"))

	return pattern.ReplaceAllStringFunc(tpl, func(match string) string {
		return values[match]
	})
}
