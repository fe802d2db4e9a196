package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/augmem/internal/dagger"
)

// versionPkg is the package whose vars the release build stamps via -X.
const versionPkg = "github.com/augmentcode/augmem/cmd/augmem/version"

// buildTargets is the OS/arch release matrix.
var buildTargets = []struct {
	goos   string
	goarch string
}{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
}

// Build compiles the augmem binary for every release target and returns the
// artifacts laid out as <goos>/<goarch>/augmem
func (a *Augmem) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	base := a.goContainer()
	outputs := dag.Directory()

	for _, target := range buildTargets {
		path := fmt.Sprintf("%s/%s/", target.goos, target.goarch)

		build := base.
			WithEnvVariable("GOOS", target.goos).
			WithEnvVariable("GOARCH", target.goarch).
			WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, "./cli/augmem"})

		outputs = outputs.WithDirectory(path, build.Directory(path))
	}

	return outputs
}

// BuildRelease compiles versioned release binaries with the version, commit,
// and build time stamped into the version command
func (a *Augmem) BuildRelease(
	ctx context.Context,

	// Release version tag to stamp into the binaries
	version string,

	// Commit SHA the binaries are built from
	commit string,
) *dagger.Directory {
	ldflags := []string{
		"-s", "-w",
		fmt.Sprintf("-X '%s.Version=%s'", versionPkg, version),
		fmt.Sprintf("-X '%s.Sha=%s'", versionPkg, commit),
		fmt.Sprintf("-X '%s.Buildtime=%s'", versionPkg, time.Now().Format(time.RFC3339)),
	}

	return a.Build(ctx, strings.Join(ldflags, " "))
}
