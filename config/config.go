package config

import (
	// Stdlib
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/errs"

	// Vendor
	"gopkg.in/yaml.v2"
)

const (
	// LocalConfigFilename is the filename of the optional configuration file
	// that is expected to be placed in the repository root.
	LocalConfigFilename = ".sda-release.yml"

	DefaultTrunkBranchName = "main"
	DefaultRemoteName      = "origin"
	DefaultPrimaryManifest = "deno.json"
	DefaultMirrorManifest  = "package.json"
)

// LocalConfig represents the local configuration file content.
type LocalConfig struct {
	TrunkBranch string `yaml:"trunk_branch"`
	Remote      string `yaml:"remote"`
	Manifests   struct {
		Primary   string `yaml:"primary"`
		Secondary string `yaml:"secondary"`
	} `yaml:"manifests"`
}

func (local *LocalConfig) fillDefaults() {
	if local.TrunkBranch == "" {
		local.TrunkBranch = DefaultTrunkBranchName
	}
	if local.Remote == "" {
		local.Remote = DefaultRemoteName
	}
	ms := &local.Manifests
	if ms.Primary == "" {
		ms.Primary = DefaultPrimaryManifest
	}
	if ms.Secondary == "" {
		ms.Secondary = DefaultMirrorManifest
	}
}

func (local *LocalConfig) validate() error {
	ms := &local.Manifests
	switch {
	case filepath.IsAbs(ms.Primary):
		return &ErrKeyInvalid{"manifests.primary", ms.Primary}
	case filepath.IsAbs(ms.Secondary):
		return &ErrKeyInvalid{"manifests.secondary", ms.Secondary}
	case filepath.Clean(ms.Primary) == filepath.Clean(ms.Secondary):
		return &ErrKeyInvalid{"manifests.secondary", ms.Secondary}
	}
	return nil
}

// Config is the configuration the release commands work with.
type Config struct {
	// RootDir is the repository root absolute path.
	// The manifest paths are relative to this directory.
	RootDir string

	local *LocalConfig
}

func (config *Config) TrunkBranchName() string {
	return config.local.TrunkBranch
}

func (config *Config) RemoteName() string {
	return config.local.Remote
}

func (config *Config) PrimaryManifestPath() string {
	return filepath.Join(config.RootDir, config.local.Manifests.Primary)
}

func (config *Config) SecondaryManifestPath() string {
	return filepath.Join(config.RootDir, config.local.Manifests.Secondary)
}

// RelativePath returns path relative to RootDir, the way the manifests
// are written in the configuration file. Paths outside of RootDir
// are returned unchanged.
func (config *Config) RelativePath(path string) string {
	rel, err := filepath.Rel(config.RootDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Default returns the default configuration for the given repository root.
func Default(rootDir string) *Config {
	local := &LocalConfig{}
	local.fillDefaults()
	return &Config{rootDir, local}
}

// Load reads the configuration file located at path and fills in the defaults.
//
// An empty path means LocalConfigFilename in rootDir. A missing file is not
// an error in that case, the defaults are used. An explicitly requested file
// must exist, though.
func Load(rootDir, path string) (*Config, error) {
	task := "Load the release configuration"

	explicit := path != ""
	if !explicit {
		path = filepath.Join(rootDir, LocalConfigFilename)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(rootDir), nil
		}
		return nil, errs.NewError(task, err)
	}

	return Parse(rootDir, content, path)
}

// Parse parses the configuration file content.
// The filename is only used in error messages.
func Parse(rootDir string, content []byte, filename string) (*Config, error) {
	task := fmt.Sprintf("Parse configuration file '%v'", filename)

	local := &LocalConfig{}
	if err := yaml.UnmarshalStrict(content, local); err != nil {
		return nil, errs.NewErrorWithHint(
			task, err, "Make sure the configuration file is valid YAML\n")
	}
	local.fillDefaults()
	if err := local.validate(); err != nil {
		return nil, errs.NewError(task, err)
	}

	return &Config{rootDir, local}, nil
}
