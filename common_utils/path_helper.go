package common_utils

import "strings"

// BuildPathFromParts joins the first numParts elements of a dot split
// path back into a partial path with a trailing dot. Asking for at
// least as many parts as exist returns the original path unchanged.
func BuildPathFromParts(pathParts []string, numParts int) string {
	if numParts <= 0 {
		return ""
	}
	if numParts >= len(pathParts) {
		return strings.Join(pathParts, ".")
	}
	return strings.Join(pathParts[:numParts], ".") + "."
}
