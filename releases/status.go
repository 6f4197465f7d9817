package releases

import (
	// Internal
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/version"
)

// Status describes the release state of the repository.
type Status struct {
	PrimaryManifest   string
	PrimaryVersion    *version.Version
	SecondaryManifest string
	SecondaryVersion  *version.Version
	CurrentBranch     string
	TrunkBranch       string
	LatestTag         string
}

// InSync returns true when both manifests contain the same version.
func (status *Status) InSync() bool {
	return status.PrimaryVersion.Equals(status.SecondaryVersion.Version)
}

// Released returns true when the latest release tag matches the primary version.
func (status *Status) Released() bool {
	return status.LatestTag == status.PrimaryVersion.ReleaseTagString()
}

// OnTrunk returns true when the trunk branch is checked out.
func (status *Status) OnTrunk() bool {
	return status.CurrentBranch == status.TrunkBranch
}

// Status collects the release state. Nothing is modified.
func (driver *Driver) Status() (*Status, error) {
	task := "Collect the release status"

	primary, secondary, err := driver.readManifests()
	if err != nil {
		return nil, err
	}

	primaryVersion, err := primary.Version()
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	secondaryVersion, err := secondary.Version()
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	branch, err := driver.currentBranch()
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	latest, err := LatestTag(driver.repo)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	return &Status{
		PrimaryManifest:   primary.Path(),
		PrimaryVersion:    primaryVersion,
		SecondaryManifest: secondary.Path(),
		SecondaryVersion:  secondaryVersion,
		CurrentBranch:     branch,
		TrunkBranch:       driver.config.TrunkBranchName(),
		LatestTag:         latest,
	}, nil
}
