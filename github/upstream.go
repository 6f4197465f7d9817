package github

import (
	// Stdlib
	"fmt"
	"net/url"
	"regexp"
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/errs"
)

var (
	sshAddressRegexp = regexp.MustCompile("^git@[^:]+:([^/]+)/(.+)$")
	urlPathRegexp    = regexp.MustCompile("^/([^/]+)/(.+)$")
)

// ParseUpstreamURL parses the URL of a git remote
// and returns the given GitHub owner and repository.
func ParseUpstreamURL(remoteURL string) (owner, repo string, err error) {
	task := "Parse the upstream repository URL"

	defer func() {
		// Strip trailing .git if present.
		repo = strings.TrimSuffix(repo, ".git")
	}()

	// Try to parse the URL as an SSH address first.
	owner, repo, ok := tryParseUpstreamAsSSH(remoteURL)
	if ok {
		return owner, repo, nil
	}

	// Try to parse the URL as a regular URL.
	owner, repo, ok = tryParseUpstreamAsURL(remoteURL)
	if ok {
		return owner, repo, nil
	}

	err = fmt.Errorf("failed to parse git remote URL: %v", remoteURL)
	return "", "", errs.NewError(task, err)
}

// tryParseUpstreamAsSSH tries to parse the address as an SSH address,
// e.g. git@github.com:owner/repo.git
func tryParseUpstreamAsSSH(remoteURL string) (owner, repo string, ok bool) {
	match := sshAddressRegexp.FindStringSubmatch(remoteURL)
	if len(match) != 0 {
		return match[1], match[2], true
	}
	return "", "", false
}

// tryParseUpstreamAsURL tries to parse the address as a regular URL,
// e.g. https://github.com/owner/repo
func tryParseUpstreamAsURL(remoteURL string) (owner, repo string, ok bool) {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "", "", false
	}

	switch u.Scheme {
	case "ssh", "https", "http":
		match := urlPathRegexp.FindStringSubmatch(u.Path)
		if len(match) != 0 {
			return match[1], match[2], true
		}
	}
	return "", "", false
}
