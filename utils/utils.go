package utils

import (
	"math/rand"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// StringSlicesOverlap returns true iff the two slices share at least one
// element.
func StringSlicesOverlap(a []string, b []string) bool {
	seen := make(map[string]bool, len(a))
	for _, str := range a {
		seen[str] = true
	}
	for _, str := range b {
		if seen[str] {
			return true
		}
	}
	return false
}

// DedupStringSlice returns a copy of the input with duplicates removed,
// preserving first-seen order.
func DedupStringSlice(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := []string{}
	for _, str := range in {
		if seen[str] {
			continue
		}
		seen[str] = true
		out = append(out, str)
	}
	return out
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RandomAlphabetString generates a random string of length n consisting of
// lower case alphabet characters.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
