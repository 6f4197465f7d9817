package github

import (
	// Stdlib
	"context"
	"fmt"
	"net/url"

	// Internal
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"

	// Vendor
	"github.com/google/go-github/v66/github"
	"github.com/toqueteos/webbrowser"
)

// NewReleaseURL returns the URL of the page for drafting a release
// from an already pushed tag.
func NewReleaseURL(owner, repo, tag string) string {
	return fmt.Sprintf("https://github.com/%v/%v/releases/new?tag=%v",
		url.PathEscape(owner), url.PathEscape(repo), url.QueryEscape(tag))
}

// CreateRelease publishes a GitHub release for the given pushed tag.
// The release notes are generated by GitHub.
func CreateRelease(
	ctx context.Context,
	client *github.Client,
	owner string,
	repo string,
	tag string,
) (*github.RepositoryRelease, error) {

	task := fmt.Sprintf("Create GitHub release %v for %v/%v", tag, owner, repo)
	log.Run(task)

	release, _, err := client.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:              github.String(tag),
		Name:                 github.String(tag),
		GenerateReleaseNotes: github.Bool(true),
	})
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return release, nil
}

// OpenInBrowser opens the given URL in the default web browser.
func OpenInBrowser(pageURL string) error {
	task := fmt.Sprintf("Open %v in the web browser", pageURL)
	log.Run(task)
	if err := webbrowser.Open(pageURL); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
