package statusCmd

import (
	// Stdlib
	"fmt"
	"os"
	"text/tabwriter"

	// Internal
	"github.com/setup-sda/sda-release/app"
	"github.com/setup-sda/sda-release/app/appflags"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"
	"github.com/setup-sda/sda-release/releases"

	// Vendor
	"github.com/fatih/color"
	"gopkg.in/tchap/gocli.v2"
)

var Command = &gocli.Command{
	UsageLine: "status",
	Short:     "print the release status of the project",
	Long: `
  Print the versions stored in the manifests, the latest release tag
  and the current branch. Nothing is modified.

  Warnings are printed when the manifests disagree, the current version
  has not been tagged yet or the trunk branch is not checked out.
	`,
	Action: run,
}

func init() {
	// Register global flags.
	appflags.RegisterGlobalFlags(&Command.Flags)
}

func run(cmd *gocli.Command, args []string) {
	if len(args) != 0 {
		cmd.Usage()
		os.Exit(2)
	}

	if err := runMain(); err != nil {
		errs.Fatal(err)
	}
}

func runMain() error {
	ctx, err := app.Init()
	if err != nil {
		return err
	}

	status, err := releases.NewDriver(ctx.Config, ctx.Repo).Status()
	if err != nil {
		return err
	}

	latest := status.LatestTag
	if latest == "" {
		latest = "-"
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	row := func(key, value interface{}) {
		fmt.Fprintf(tw, "%v\t%v\n", key, value)
	}
	row(ctx.Config.RelativePath(status.PrimaryManifest), status.PrimaryVersion)
	row(ctx.Config.RelativePath(status.SecondaryManifest), status.SecondaryVersion)
	row("latest tag", latest)
	row("branch", status.CurrentBranch)
	if err := tw.Flush(); err != nil {
		return err
	}

	if !status.InSync() {
		log.Warn(fmt.Sprintf("%v and %v contain different versions",
			ctx.Config.RelativePath(status.PrimaryManifest),
			ctx.Config.RelativePath(status.SecondaryManifest)))
	}
	if !status.Released() {
		log.Warn(fmt.Sprintf("version %v has not been tagged yet", status.PrimaryVersion))
	}
	if !status.OnTrunk() {
		log.Warn(fmt.Sprintf("branch '%v' is not checked out", status.TrunkBranch))
	}
	if status.InSync() && status.Released() {
		color.Green("Everything released")
	}
	return nil
}
