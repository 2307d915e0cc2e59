package api

import (
	"strconv"
	"strings"
)

// A Predicate is one clause of a search query, in the API's bracketed call
// syntax, for example:
//
//	[:d = at(document.type, "product")]
//
// The helpers below cover the common forms. Anything they do not cover can
// be written out literally and passed to SearchForm.Query.
type Predicate string

// At matches documents whose value at path is exactly value.
func At(path, value string) Predicate {
	return Predicate("[:d = at(" + path + ", " + strconv.Quote(value) + ")]")
}

// Any matches documents whose value at path is any of values. Intended for
// multi-valued paths such as document.tags.
func Any(path string, values []string) Predicate {
	return Predicate("[:d = any(" + path + ", " + quoteList(values) + ")]")
}

// In matches documents whose value at path is one of values. The API returns
// matches in the order values are listed, which makes In the predicate for
// fetching documents by ID or UID list.
func In(path string, values []string) Predicate {
	return Predicate("[:d = in(" + path + ", " + quoteList(values) + ")]")
}

// Fulltext matches documents whose content at path contains query, matching
// whole words case-insensitively.
func Fulltext(path, query string) Predicate {
	return Predicate("[:d = fulltext(" + path + ", " + strconv.Quote(query) + ")]")
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
