// Package tagl builds TAGL statements sent to httagd.
//
// The encoder is a plain string builder. It performs no grammar validation;
// the server owns the TAGL grammar and reports malformed statements as errors.
package tagl

import (
	"errors"
	"strings"
)

// SubRelation is the built-in subordinate relation (parent -> child).
const SubRelation = "_sub"

// PutPrefix opens a PUT-class statement (define or append).
const PutPrefix = ">>"

var ErrEmptyTagID = errors.New("empty tag id")

// TagID identifies a tag. It is used verbatim in statements.
type TagID string

func (id TagID) String() string { return string(id) }

// Valid reports whether id is usable in a statement or URL.
func (id TagID) Valid() bool { return strings.TrimSpace(string(id)) != "" }

// CheckID returns ErrEmptyTagID when id is empty or only whitespace.
func CheckID(id string) error {
	if !TagID(id).Valid() {
		return ErrEmptyTagID
	}
	return nil
}

// Statement is a single TAGL line. The client never parses one back.
type Statement string

func (s Statement) String() string { return string(s) }

// EncodePutTag declares a tree edge: ">> subject relation object".
func EncodePutTag(subject, relation, object string) Statement {
	return Statement(PutPrefix + " " + subject + " " + relation + " " + object)
}

// EncodePutPredicate asserts a free-form predicate clause about subject:
// ">> subject clause".
func EncodePutPredicate(subject, clause string) Statement {
	return Statement(PutPrefix + " " + subject + " " + clause)
}
