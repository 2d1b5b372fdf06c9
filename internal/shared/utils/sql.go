package utils

import "strings"

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

// LikePattern wraps a search term for a contains-style ILIKE match.
func LikePattern(term string) string {
	return "%" + term + "%"
}
