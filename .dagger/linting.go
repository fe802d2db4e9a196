package main

import (
	"context"

	"dagger/augmem/internal/dagger"
)

const golangciLintVersion = "v2.8.0"

// linter builds the golangci-lint runner on top of goContainer() so the Go
// caches carry over, pinned to the repo's .golangci.yml.
func (a *Augmem) linter() *dagger.Golangcilint {
	base := a.goContainer().
		WithExec([]string{"go", "install",
			"github.com/golangci/golangci-lint/v2/cmd/golangci-lint@" + golangciLintVersion})

	return dag.Golangcilint(a.Source, dagger.GolangcilintOpts{
		BaseCtr: base,
		Config:  a.Source.File(".golangci.yml"),
	})
}

// CheckLint reports lint findings without touching the source.
func (a *Augmem) CheckLint(ctx context.Context) (string, error) {
	return a.linter().Check(ctx)
}

// FixLint applies the automatic fixes and returns the rewritten source tree.
func (a *Augmem) FixLint(ctx context.Context) *dagger.Directory {
	return a.linter().Lint()
}
