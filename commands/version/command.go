package versionCmd

import (
	// Stdlib
	"fmt"
	"os"

	// Internal
	"github.com/setup-sda/sda-release/app"
	"github.com/setup-sda/sda-release/app/appflags"
	"github.com/setup-sda/sda-release/commands/version/bump"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/releases"

	// Vendor
	"gopkg.in/tchap/gocli.v2"
)

var Command = &gocli.Command{
	UsageLine: "version",
	Short:     "print the current project version",
	Long: `
  Print the project version string as stored in the primary manifest.

  There are also some subcommands available. Check them out.
	`,
	Action: func(cmd *gocli.Command, args []string) {
		if len(args) != 0 {
			cmd.Usage()
			os.Exit(2)
		}

		ctx := app.InitOrDie()
		ver, err := releases.NewDriver(ctx.Config, ctx.Repo).CurrentVersion()
		if err != nil {
			errs.Fatal(err)
		}

		fmt.Println(ver)
	},
}

func init() {
	// Register global flags.
	appflags.RegisterGlobalFlags(&Command.Flags)

	// Register subcommands.
	Command.MustRegisterSubcommand(bumpCmd.Command)
}
