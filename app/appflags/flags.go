// Package appflags holds the flags every command accepts.
package appflags

import (
	// Stdlib
	"flag"
	"strings"

	// Internal
	enumflag "github.com/setup-sda/sda-release/flag"
	"github.com/setup-sda/sda-release/log"
)

var (
	// FlagConfig overrides the path of the release configuration file.
	FlagConfig string

	// FlagDir makes the command run as if started in the given directory.
	FlagDir string

	FlagLog = enumflag.NewStringEnumFlag(log.LevelStrings(), log.MustLevelToString(log.Info))
)

func RegisterGlobalFlags(fs *flag.FlagSet) {
	fs.StringVar(&FlagDir, "C", FlagDir,
		"run as if started in the given directory")
	fs.StringVar(&FlagConfig, "config", FlagConfig,
		"use the given file instead of the repository .sda-release.yml")
	fs.Var(FlagLog, "log",
		"set logging verbosity; {"+strings.Join(FlagLog.Choices(), "|")+"}")
}
