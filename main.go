package main

import (
	// Stdlib
	"fmt"
	"os"
	"os/signal"

	// Internal
	"github.com/setup-sda/sda-release/app/appflags"
	"github.com/setup-sda/sda-release/commands/status"
	"github.com/setup-sda/sda-release/commands/version"
	"github.com/setup-sda/sda-release/commands/version/bump"

	// Vendor
	"gopkg.in/tchap/gocli.v2"
)

const version = "1.0.0"

func main() {
	// Initialise the application.
	release := gocli.NewApp("sda-release")
	release.UsageLine = "sda-release [-github_release] [-open] {major|minor|patch}"
	release.Short = "increment, commit, tag and push the project version"
	release.Version = version
	release.Long = `
  sda-release increments the version stored in deno.json,
  mirrors it into package.json, commits the change, pushes the trunk
  branch and pushes a vX.Y.Z tag.

  Running sda-release with an increment type is a shortcut
  for 'sda-release version bump'. See the list of subcommands.`

	// Register global flags.
	appflags.RegisterGlobalFlags(&release.Flags)
	bumpCmd.RegisterFlags(&release.Flags)

	// Bump the version when no subcommand matches.
	release.Action = bumpCmd.Run

	// Register subcommands.
	release.MustRegisterSubcommand(versionCmd.Command)
	release.MustRegisterSubcommand(statusCmd.Command)

	// Start processing signals.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt)
	go catchSignals(signalCh)

	// Run the application.
	release.Run(os.Args[1:])
}

func catchSignals(ch chan os.Signal) {
	<-ch
	fmt.Print(`
+-----------------------------------------------------+
| Signal received, the child processes were notified. |
| Send the signal again to exit immediately.          |
+-----------------------------------------------------+
	`)
	signal.Stop(ch)
}
