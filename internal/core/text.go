package core

import "strings"

// FoldASCII lowercases the ASCII letters A-Z and leaves every other byte
// untouched, so the result does not depend on locale or Unicode tables.
func FoldASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// EqualFold reports whether a and b are equal after ASCII case folding.
func EqualFold(a, b string) bool {
	return FoldASCII(a) == FoldASCII(b)
}

// ContainsFold reports whether needle occurs in haystack after ASCII case
// folding. An empty needle always matches.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(FoldASCII(haystack), FoldASCII(needle))
}
