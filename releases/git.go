package releases

import (
	// Stdlib
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/errs"

	// Vendor
	"github.com/coreos/go-semver/semver"
)

// ReleaseTagPattern matches the release tags in git tag --list.
const ReleaseTagPattern = "v*.*.*"

// ListTags returns the list of all release tags, sorted by the versions they represent.
// Tags matching the pattern that are not valid versions are skipped.
func ListTags(repo Repository) (tags []string, err error) {
	task := "Get release tags"

	names, err := repo.ListTags(ReleaseTagPattern)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	// Parse the tags to get sortable versions.
	vers := make([]*semver.Version, 0, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, "v") {
			continue
		}
		ver, err := semver.NewVersion(name[1:])
		if err != nil {
			continue
		}
		vers = append(vers, ver)
	}

	// Sort the versions.
	semver.Sort(vers)

	// Convert versions back to tag names and return.
	tgs := make([]string, 0, len(vers))
	for _, ver := range vers {
		tgs = append(tgs, "v"+ver.String())
	}
	return tgs, nil
}

// LatestTag returns the release tag representing the highest version,
// or an empty string in case there are no release tags.
func LatestTag(repo Repository) (string, error) {
	tags, err := ListTags(repo)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[len(tags)-1], nil
}
