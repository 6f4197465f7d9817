package github

import (
	// Stdlib
	"context"
	"errors"
	"os"

	// Vendor
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// TokenEnvironmentVariable is where the GitHub API token is read from.
const TokenEnvironmentVariable = "GITHUB_TOKEN"

var ErrTokenNotSet = errors.New(TokenEnvironmentVariable + " environment variable not set")

func NewClient(token string) *github.Client {
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token}))
	return github.NewClient(httpClient)
}

// NewClientFromEnvironment returns a client authenticated
// using the token stored in TokenEnvironmentVariable.
func NewClientFromEnvironment() (*github.Client, error) {
	token := os.Getenv(TokenEnvironmentVariable)
	if token == "" {
		return nil, ErrTokenNotSet
	}
	return NewClient(token), nil
}
