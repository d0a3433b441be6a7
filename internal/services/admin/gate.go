package admin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQueryRejected is returned for statements whose leading verb is not on
// the read-only allowlist
var ErrQueryRejected = errors.New("only read-only queries are permitted")

// allowedVerbs is the fixed allowlist of leading keywords for ad-hoc queries
var allowedVerbs = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"EXPLAIN":  true,
}

// ValidateQuery accepts a statement only if its first whitespace-delimited
// token, uppercased, is on the allowlist. This is a syntactic leading-token
// gate, not a parser: a mutating statement stacked after a semicolon inside an
// allowed-looking statement is not detected. That gap is a known residual risk
// of the admin surface, kept on purpose.
func ValidateQuery(statement string) error {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty statement", ErrQueryRejected)
	}

	verb := strings.ToUpper(fields[0])
	if !allowedVerbs[verb] {
		return fmt.Errorf("%w: %s is not allowed", ErrQueryRejected, verb)
	}

	return nil
}
