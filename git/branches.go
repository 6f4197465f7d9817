package git

import "strings"

var branchPrefixes = []string{"refs/heads/", "heads/"}

// StripBranchPrefix turns a ref name into a branch name, i.e. both
// "refs/heads/main" and "heads/main" become "main".
//
// git rev-parse --abbrev-ref prints heads/<name> in case the name
// is ambiguous, e.g. when a tag of the same name exists.
func StripBranchPrefix(ref string) string {
	for _, prefix := range branchPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return ref[len(prefix):]
		}
	}
	return ref
}
