package app

import (
	// Internal
	"github.com/setup-sda/sda-release/app/appflags"
	"github.com/setup-sda/sda-release/config"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/git"
	"github.com/setup-sda/sda-release/log"

	// Vendor
	"github.com/kr/pretty"
)

// Context is what the commands need to do their job.
// It is assembled from the global flags and the working directory.
type Context struct {
	Config *config.Config
	Repo   *git.Repository
}

// Init sets up logging and loads the configuration for the repository
// the current working directory belongs to, or the -C directory when set.
func Init() (*Context, error) {
	return InitInDir(appflags.FlagDir)
}

// InitInDir is like Init, but dir is used instead of the working directory.
func InitInDir(dir string) (*Context, error) {
	// Set up logging.
	log.SetV(log.MustStringToLevel(appflags.FlagLog.Value()))

	// Find the repository root.
	task := "Locate the repository root"
	repo := git.NewRepository(dir)
	root, err := repo.RootDir()
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	repo.Dir = root

	// Load the configuration.
	cfg, err := config.Load(root, appflags.FlagConfig)
	if err != nil {
		return nil, err
	}
	log.V(log.Debug).Log("Configuration loaded")
	log.V(log.Debug).Print(pretty.Sprint(cfg), "\n")

	return &Context{cfg, repo}, nil
}

// InitOrDie is like Init, but it exits the process on error.
func InitOrDie() *Context {
	ctx, err := Init()
	if err != nil {
		errs.Fatal(err)
	}
	return ctx
}
