package ir

import "strings"

// InferNamespace infers the identifier prefix shared by a document's
// interface names.
//
// Names are compared position by position. At the first position where
// they disagree, the common prefix is cut back to its last underscore and
// the first underscore-delimited token of what remains is the namespace.
// If the names never disagree, the namespace is the first token of the
// shortest name. The result never ends inside a word.
func InferNamespace(names []string) string {
	if len(names) == 0 {
		return ""
	}

	shortest := names[0]
	for _, n := range names[1:] {
		if len(n) < len(shortest) {
			shortest = n
		}
	}

	for i := 0; i < len(shortest); i++ {
		c := names[0][i]
		for _, n := range names[1:] {
			if n[i] != c {
				return firstToken(truncateToUnderscore(names[0][:i]))
			}
		}
	}
	return firstToken(shortest)
}

// truncateToUnderscore drops everything after the last underscore, and the
// underscore itself. A prefix without underscores is a partial word and
// truncates to "".
func truncateToUnderscore(prefix string) string {
	i := strings.LastIndexByte(prefix, '_')
	if i < 0 {
		return ""
	}
	return prefix[:i]
}

func firstToken(s string) string {
	token, _, _ := strings.Cut(s, "_")
	return token
}
