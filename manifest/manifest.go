// Package manifest reads and updates the version field of JSON project
// manifests such as deno.json or package.json.
//
// The documents are never re-encoded. Only the raw bytes of the version
// value are replaced, so key order, indentation and all the other fields
// stay exactly as they were.
package manifest

import (
	// Stdlib
	"errors"
	"fmt"
	"os"

	// Internal
	"github.com/setup-sda/sda-release/action"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"
	"github.com/setup-sda/sda-release/version"

	// Vendor
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// VersionKey is the top-level manifest key holding the version string.
const VersionKey = "version"

var (
	ErrInvalidJSON       = errors.New("not a valid JSON document")
	ErrNotObject         = errors.New("the document is not a JSON object")
	ErrVersionKeyMissing = fmt.Errorf("key '%v' not found", VersionKey)
	ErrVersionNotAString = fmt.Errorf("key '%v' is not a string", VersionKey)
)

type Manifest struct {
	path    string
	mode    os.FileMode
	content []byte
	onDisk  []byte
}

// Read reads the manifest located at path.
func Read(path string) (*Manifest, error) {
	task := fmt.Sprintf("Read manifest '%v'", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	m, err := Parse(path, content)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	m.mode = info.Mode().Perm()
	return m, nil
}

// Parse wraps content that is supposed to be stored at path.
// Nothing is read from the disk.
func Parse(path string, content []byte) (*Manifest, error) {
	task := fmt.Sprintf("Parse manifest '%v'", path)
	if !gjson.ValidBytes(content) {
		return nil, errs.NewError(task, ErrInvalidJSON)
	}
	if !gjson.ParseBytes(content).IsObject() {
		return nil, errs.NewError(task, ErrNotObject)
	}

	return &Manifest{
		path:    path,
		mode:    0644,
		content: content,
		onDisk:  content,
	}, nil
}

func (m *Manifest) Path() string {
	return m.path
}

// Bytes returns the current manifest content, including any unsaved changes.
func (m *Manifest) Bytes() []byte {
	return m.content
}

// Version returns the version stored in the manifest.
func (m *Manifest) Version() (*version.Version, error) {
	task := fmt.Sprintf("Get the version stored in '%v'", m.path)

	res := gjson.GetBytes(m.content, VersionKey)
	switch {
	case !res.Exists():
		return nil, errs.NewError(task, ErrVersionKeyMissing)
	case res.Type != gjson.String:
		return nil, errs.NewError(task, ErrVersionNotAString)
	}

	ver, err := version.Parse(res.Str)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return ver, nil
}

// SetVersion replaces the version value in memory. Use Write to save it.
func (m *Manifest) SetVersion(ver *version.Version) error {
	task := fmt.Sprintf("Set the version in '%v' to %v", m.path, ver)

	content, err := sjson.SetBytes(m.content, VersionKey, ver.String())
	if err != nil {
		return errs.NewError(task, err)
	}
	m.content = content
	return nil
}

// Modified returns true when there are changes not written yet.
func (m *Manifest) Modified() bool {
	return string(m.content) != string(m.onDisk)
}

// Write saves the manifest. The action returned restores
// the content that was on the disk before the write.
func (m *Manifest) Write() (action.Action, error) {
	task := fmt.Sprintf("Write manifest '%v'", m.path)
	log.V(log.Verbose).Run(task)

	original := m.onDisk
	if err := os.WriteFile(m.path, m.content, m.mode); err != nil {
		return nil, errs.NewError(task, err)
	}
	m.onDisk = m.content

	return action.ActionFunc(func() error {
		task := fmt.Sprintf("Restore manifest '%v'", m.path)
		if err := os.WriteFile(m.path, original, m.mode); err != nil {
			return errs.NewError(task, err)
		}
		m.content = original
		m.onDisk = original
		return nil
	}), nil
}
