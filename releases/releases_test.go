package releases_test

import (
	// Stdlib
	"errors"
	"os"
	"path/filepath"
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/config"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"
	. "github.com/setup-sda/sda-release/releases"
	"github.com/setup-sda/sda-release/version"

	// Vendor
	"github.com/onsi/ginkgo"
)

const denoTemplate = `{
  "name": "@nshiab/simple-data-analysis",
  "version": "%VERSION%",
  "exports": "./src/index.ts",
  "tasks": {
    "test": "deno test -A --fail-fast"
  }
}
`

const packageTemplate = `{
  "name": "simple-data-analysis",
  "version": "%VERSION%",
  "type": "module",
  "dependencies": {
    "@duckdb/node-api": "1.1.3-alpha.7"
  }
}
`

func render(template, ver string) string {
	return strings.Replace(template, "%VERSION%", ver, 1)
}

var _ = Describe("incrementing the version", func() {
	var (
		dir    string
		repo   *fakeRepository
		driver *Driver

		denoPath    string
		packagePath string
	)

	readFile := func(path string) string {
		content, err := os.ReadFile(path)
		Expect(err).To(BeNil())
		return string(content)
	}

	setup := func(denoVersion, packageVersion string) {
		Expect(os.WriteFile(denoPath, []byte(render(denoTemplate, denoVersion)), 0644)).To(Succeed())
		Expect(os.WriteFile(packagePath, []byte(render(packageTemplate, packageVersion)), 0644)).To(Succeed())
	}

	expectUnchanged := func(denoVersion, packageVersion string) {
		Expect(readFile(denoPath)).To(Equal(render(denoTemplate, denoVersion)))
		Expect(readFile(packagePath)).To(Equal(render(packageTemplate, packageVersion)))
	}

	BeforeEach(func() {
		log.SetOutput(ginkgo.GinkgoWriter)

		var err error
		dir, err = os.MkdirTemp("", "releases")
		Expect(err).To(BeNil())
		denoPath = filepath.Join(dir, "deno.json")
		packagePath = filepath.Join(dir, "package.json")

		repo = &fakeRepository{branch: "main"}
		driver = NewDriver(config.Default(dir), repo)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should release a minor version", func() {
		setup("2.3.9", "2.3.9")

		ver, err := driver.IncrementVersion(version.KindMinor)
		Expect(err).To(BeNil())
		Expect(ver.String()).To(Equal("2.4.0"))

		expectUnchanged("2.4.0", "2.4.0")
		Expect(repo.commits).To(Equal([]string{"v2.4.0"}))
		Expect(repo.pushed).To(Equal(1))
		Expect(repo.created).To(Equal([]string{"v2.4.0"}))
		Expect(repo.tagPush).To(Equal([]string{"origin v2.4.0"}))
	})

	It("should release a major version", func() {
		setup("0.9.9", "0.9.9")

		ver, err := driver.IncrementVersion(version.KindMajor)
		Expect(err).To(BeNil())
		Expect(ver.String()).To(Equal("1.0.0"))
		expectUnchanged("1.0.0", "1.0.0")
	})

	It("should release a patch version", func() {
		setup("1.2.3", "1.2.3")

		ver, err := driver.IncrementVersion(version.KindPatch)
		Expect(err).To(BeNil())
		Expect(ver.String()).To(Equal("1.2.4"))
		expectUnchanged("1.2.4", "1.2.4")
	})

	It("should overwrite the secondary version with the primary one", func() {
		setup("1.2.3", "0.0.1")

		ver, err := driver.IncrementVersion(version.KindPatch)
		Expect(err).To(BeNil())
		Expect(ver.String()).To(Equal("1.2.4"))
		expectUnchanged("1.2.4", "1.2.4")
	})

	It("should run the steps in order", func() {
		setup("1.2.3", "1.2.3")

		_, err := driver.IncrementVersion(version.KindPatch)
		Expect(err).To(BeNil())
		Expect(repo.calls).To(Equal([]string{
			"CurrentBranch()",
			"CommitAll(v1.2.4)",
			"Push()",
			"Tag(v1.2.4)",
			"PushTag(origin v1.2.4)",
		}))
	})

	Context("invalid input", func() {
		It("should reject an unknown increment type", func() {
			setup("1.2.3", "1.2.3")

			_, err := driver.IncrementVersion(version.Kind("bogus"))
			Expect(errs.RootCause(err)).To(BeAssignableToTypeOf(&version.ErrInvalidKind{}))

			expectUnchanged("1.2.3", "1.2.3")
			Expect(repo.calls).To(BeEmpty())
		})

		It("should reject an empty increment type", func() {
			setup("1.2.3", "1.2.3")

			_, err := driver.IncrementVersion(version.Kind(""))
			Expect(err).To(HaveOccurred())
			expectUnchanged("1.2.3", "1.2.3")
			Expect(repo.calls).To(BeEmpty())
		})
	})

	Context("branch policy", func() {
		It("should refuse to release from another branch", func() {
			setup("1.2.3", "1.2.3")
			repo.branch = "feature"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errs.RootCause(err)).To(BeAssignableToTypeOf(&ErrNotOnTrunk{}))
			Expect(err.Error()).To(ContainSubstring("feature"))

			expectUnchanged("1.2.3", "1.2.3")
			Expect(repo.mutated()).To(BeFalse())
		})

		for _, ref := range []string{"heads/main", "refs/heads/main"} {
			func(ref string) {
				It("should accept the trunk branch reported as "+ref, func() {
					setup("1.2.3", "1.2.3")
					repo.branch = ref

					ver, err := driver.IncrementVersion(version.KindPatch)
					Expect(err).To(BeNil())
					Expect(ver.String()).To(Equal("1.2.4"))
					expectUnchanged("1.2.4", "1.2.4")
					Expect(repo.created).To(Equal([]string{"v1.2.4"}))
				})
			}(ref)
		}

		It("should not strip anything but the namespace prefix", func() {
			setup("1.2.3", "1.2.3")
			repo.branch = "feature/main"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errs.RootCause(err)).To(BeAssignableToTypeOf(&ErrNotOnTrunk{}))
			Expect(repo.mutated()).To(BeFalse())
		})

		It("should fail when the branch cannot be resolved", func() {
			setup("1.2.3", "1.2.3")
			repo.failOn = "CurrentBranch"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errors.Is(err, errInjected)).To(BeTrue())
			expectUnchanged("1.2.3", "1.2.3")
			Expect(repo.mutated()).To(BeFalse())
		})

		It("should use the configured trunk branch", func() {
			setup("1.2.3", "1.2.3")
			content := []byte("trunk_branch: develop\nremote: upstream\n")
			cfg, err := config.Parse(dir, content, config.LocalConfigFilename)
			Expect(err).To(BeNil())

			repo.branch = "develop"
			driver = NewDriver(cfg, repo)

			_, err = driver.IncrementVersion(version.KindPatch)
			Expect(err).To(BeNil())
			Expect(repo.tagPush).To(Equal([]string{"upstream v1.2.4"}))
		})
	})

	Context("broken manifests", func() {
		It("should fail when the primary manifest is missing", func() {
			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(err).To(HaveOccurred())
			Expect(repo.mutated()).To(BeFalse())
		})

		It("should leave the primary manifest untouched when the secondary one is broken", func() {
			setup("1.2.3", "1.2.3")
			Expect(os.WriteFile(packagePath, []byte("{ broken"), 0644)).To(Succeed())

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(err).To(HaveOccurred())
			Expect(readFile(denoPath)).To(Equal(render(denoTemplate, "1.2.3")))
			Expect(repo.mutated()).To(BeFalse())
		})

		It("should fail on a malformed version", func() {
			setup("1.2", "1.2.3")

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errs.RootCause(err)).To(BeAssignableToTypeOf(&version.ErrMalformed{}))
			expectUnchanged("1.2", "1.2.3")
			Expect(repo.mutated()).To(BeFalse())
		})
	})

	Context("source control failures", func() {
		It("should restore the manifests when the commit fails", func() {
			setup("1.2.3", "1.2.3")
			repo.failOn = "CommitAll"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errors.Is(err, errInjected)).To(BeTrue())

			expectUnchanged("1.2.3", "1.2.3")
			Expect(repo.calls).To(Equal([]string{
				"CurrentBranch()",
				"CommitAll(v1.2.4)",
				"Unstage(2)",
			}))
		})

		It("should restore the primary manifest when the secondary one cannot be written", func() {
			setup("1.2.3", "1.2.3")

			// Replace package.json with a directory right before it is written.
			log.SetOutput(&hookWriter{
				Writer:  ginkgo.GinkgoWriter,
				trigger: "into '" + packagePath + "'",
				hook: func() {
					Expect(os.Remove(packagePath)).To(Succeed())
					Expect(os.Mkdir(packagePath, 0755)).To(Succeed())
				},
			})

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(err).To(HaveOccurred())

			Expect(readFile(denoPath)).To(Equal(render(denoTemplate, "1.2.3")))
			Expect(repo.commits).To(BeEmpty())
			Expect(repo.calls).To(Equal([]string{"CurrentBranch()"}))
		})

		It("should refuse a version that cannot be incremented", func() {
			setup("1.2.18446744073709551615", "1.2.3")

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errs.RootCause(err)).To(BeAssignableToTypeOf(&version.ErrOverflow{}))
			expectUnchanged("1.2.18446744073709551615", "1.2.3")
			Expect(repo.mutated()).To(BeFalse())
		})

		It("should not revert the commit when the push fails", func() {
			setup("1.2.3", "1.2.3")
			repo.failOn = "Push"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errors.Is(err, errInjected)).To(BeTrue())

			var ex *errs.Error
			Expect(errors.As(err, &ex)).To(BeTrue())
			Expect(ex.Hint()).To(ContainSubstring("git push origin tag v1.2.4"))

			expectUnchanged("1.2.4", "1.2.4")
			Expect(repo.created).To(BeEmpty())
		})

		It("should stop when the tag cannot be created", func() {
			setup("1.2.3", "1.2.3")
			repo.failOn = "Tag"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errors.Is(err, errInjected)).To(BeTrue())
			Expect(repo.tagPush).To(BeEmpty())
			expectUnchanged("1.2.4", "1.2.4")
		})

		It("should report a tag push failure", func() {
			setup("1.2.3", "1.2.3")
			repo.failOn = "PushTag"

			_, err := driver.IncrementVersion(version.KindPatch)
			Expect(errors.Is(err, errInjected)).To(BeTrue())
			Expect(repo.created).To(Equal([]string{"v1.2.4"}))
		})
	})
})

var _ = Describe("release status", func() {
	var (
		dir    string
		repo   *fakeRepository
		driver *Driver
	)

	write := func(name, ver string) {
		content := `{"name": "sda", "version": "` + ver + `"}`
		Expect(os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)).To(Succeed())
	}

	BeforeEach(func() {
		log.SetOutput(ginkgo.GinkgoWriter)

		var err error
		dir, err = os.MkdirTemp("", "releases")
		Expect(err).To(BeNil())

		repo = &fakeRepository{branch: "main"}
		driver = NewDriver(config.Default(dir), repo)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should report a released version", func() {
		write("deno.json", "1.10.0")
		write("package.json", "1.10.0")
		repo.tags = []string{"v1.9.0", "v1.10.0", "v1.2.0", "vnext.1.2"}

		status, err := driver.Status()
		Expect(err).To(BeNil())
		Expect(status.InSync()).To(BeTrue())
		Expect(status.OnTrunk()).To(BeTrue())
		Expect(status.LatestTag).To(Equal("v1.10.0"))
		Expect(status.Released()).To(BeTrue())
		Expect(repo.mutated()).To(BeFalse())
	})

	It("should report the branch without the namespace prefix", func() {
		write("deno.json", "1.0.0")
		write("package.json", "1.0.0")
		repo.branch = "refs/heads/main"

		status, err := driver.Status()
		Expect(err).To(BeNil())
		Expect(status.CurrentBranch).To(Equal("main"))
		Expect(status.OnTrunk()).To(BeTrue())
	})

	It("should report manifests out of sync", func() {
		write("deno.json", "1.10.0")
		write("package.json", "1.9.0")
		repo.branch = "feature"

		status, err := driver.Status()
		Expect(err).To(BeNil())
		Expect(status.InSync()).To(BeFalse())
		Expect(status.OnTrunk()).To(BeFalse())
		Expect(status.LatestTag).To(Equal(""))
		Expect(status.Released()).To(BeFalse())
	})
})

var _ = Describe("reading the current version", func() {
	var dir string

	BeforeEach(func() {
		log.SetOutput(ginkgo.GinkgoWriter)

		var err error
		dir, err = os.MkdirTemp("", "releases")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should only need the primary manifest", func() {
		content := render(denoTemplate, "2.3.9")
		Expect(os.WriteFile(filepath.Join(dir, "deno.json"), []byte(content), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "package.json"), []byte("{ broken"), 0644)).To(Succeed())

		repo := &fakeRepository{branch: "main", failOn: "ListTags"}
		ver, err := NewDriver(config.Default(dir), repo).CurrentVersion()
		Expect(err).To(BeNil())
		Expect(ver.String()).To(Equal("2.3.9"))
		Expect(repo.calls).To(BeEmpty())
	})

	It("should fail when the primary manifest is missing", func() {
		_, err := NewDriver(config.Default(dir), &fakeRepository{}).CurrentVersion()
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("listing release tags", func() {
	It("should sort the tags by version", func() {
		repo := &fakeRepository{tags: []string{"v0.10.0", "v0.9.1", "v1.0.0", "v0.9.10", "vbad"}}
		tags, err := ListTags(repo)
		Expect(err).To(BeNil())
		Expect(tags).To(Equal([]string{"v0.9.1", "v0.9.10", "v0.10.0", "v1.0.0"}))
	})
})
