package bumpCmd

import (
	// Stdlib
	"context"
	"flag"
	"fmt"
	"os"

	// Internal
	"github.com/setup-sda/sda-release/app"
	"github.com/setup-sda/sda-release/app/appflags"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/github"
	"github.com/setup-sda/sda-release/releases"
	"github.com/setup-sda/sda-release/version"

	// Vendor
	"github.com/fatih/color"
	"gopkg.in/tchap/gocli.v2"
)

var Command = &gocli.Command{
	UsageLine: "bump [-github_release] [-open] {major|minor|patch}",
	Short:     "increment the project version and release it",
	Long: `
  Increment the given version component, commit the manifests,
  push the trunk branch and push the new vX.Y.Z tag.

  The trunk branch must be checked out for this to work.
  All pending changes in the working tree are committed as well.
	`,
	Action: Run,
}

var (
	flagGitHubRelease bool
	flagOpen          bool
)

func init() {
	// Register flags.
	RegisterFlags(&Command.Flags)

	// Register global flags.
	appflags.RegisterGlobalFlags(&Command.Flags)
}

// RegisterFlags registers the command flags with the given flag set.
// This makes it possible to run the command as the top-level action.
func RegisterFlags(flags *flag.FlagSet) {
	flags.BoolVar(&flagGitHubRelease, "github_release", flagGitHubRelease,
		"create a GitHub release for the new tag; requires "+github.TokenEnvironmentVariable)
	flags.BoolVar(&flagOpen, "open", flagOpen,
		"open the release page in the web browser")
}

func Run(cmd *gocli.Command, args []string) {
	if len(args) != 1 {
		cmd.Usage()
		os.Exit(2)
	}

	if err := runMain(args[0]); err != nil {
		errs.Fatal(err)
	}
}

func runMain(kindString string) error {
	// Make sure the increment type is correct before touching anything.
	task := "Parse the command line increment type argument"
	kind, err := version.ParseKind(kindString)
	if err != nil {
		hint := fmt.Sprintf(`
The version increment type must be one of %v.

`, version.KindStrings())
		return errs.NewErrorWithHint(task, err, hint)
	}

	ctx, err := app.Init()
	if err != nil {
		return err
	}

	// Release.
	driver := releases.NewDriver(ctx.Config, ctx.Repo)
	ver, err := driver.IncrementVersion(kind)
	if err != nil {
		return err
	}

	tag := ver.ReleaseTagString()
	color.Green("Version incremented to %v", ver)
	color.Green("Tagged with %v", tag)

	// Publish.
	if flagGitHubRelease || flagOpen {
		return publish(ctx, tag)
	}
	return nil
}

func publish(ctx *app.Context, tag string) error {
	task := "Get the GitHub repository for the release"
	remoteURL, err := ctx.Repo.RemoteURL(ctx.Config.RemoteName())
	if err != nil {
		return errs.NewError(task, err)
	}
	owner, repo, err := github.ParseUpstreamURL(remoteURL)
	if err != nil {
		return errs.NewError(task, err)
	}

	pageURL := github.NewReleaseURL(owner, repo, tag)

	if flagGitHubRelease {
		client, err := github.NewClientFromEnvironment()
		if err != nil {
			hint := fmt.Sprintf(`
The %v tag has been pushed already, only the GitHub release is missing.
Export %v and create the release manually at

  %v

`, tag, github.TokenEnvironmentVariable, pageURL)
			return errs.NewErrorWithHint(task, err, hint)
		}

		release, err := github.CreateRelease(context.Background(), client, owner, repo, tag)
		if err != nil {
			return err
		}
		pageURL = release.GetHTMLURL()
		color.Green("GitHub release created: %v", pageURL)
	}

	if flagOpen {
		return github.OpenInBrowser(pageURL)
	}
	return nil
}
