// Augmem CI/CD
//
// Package main drives the augmem build, test, lint, and release pipeline so
// the same steps run locally and in GitHub Actions.
package main

import (
	"context"

	"dagger/augmem/internal/dagger"
)

// goImage is the toolchain container every pipeline step starts from. Augmem
// is pure Go with CGO disabled, so the Alpine variant is enough.
const goImage = "golang:1.25-alpine"

// Augmem is the Dagger module behind the augmem pipeline
type Augmem struct {
	// Checked-out project source
	//
	// +private
	Source *dagger.Directory
}

// New wires the project source into the pipeline module
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Augmem {
	return &Augmem{
		Source: source,
	}
}

// goContainer mounts the project source and the Go module and build caches
// into a fresh toolchain container. Every pipeline step builds on it.
func (a *Augmem) goContainer() *dagger.Container {
	return dag.Container().
		From(goImage).
		WithDirectory("/src", a.Source).
		WithWorkdir("/src").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("GOEXPERIMENT", "jsonv2").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build"))
}

// Test runs the full unit test suite
func (a *Augmem) Test(ctx context.Context) (string, error) {
	return a.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
