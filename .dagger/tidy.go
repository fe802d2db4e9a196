package main

import (
	"context"
	"errors"
	"fmt"

	"dagger/augmem/internal/dagger"
)

// moduleFiles are the files "go mod tidy" may rewrite.
var moduleFiles = []string{"go.mod", "go.sum"}

// CheckGoModTidy fails when "go mod tidy" would change go.mod or go.sum,
// catching commits made without tidying first.
//
// +check
func (a *Augmem) CheckGoModTidy(ctx context.Context) (string, error) {
	ctr := a.goContainer()
	for _, f := range moduleFiles {
		ctr = ctr.WithExec([]string{"cp", f, f + ".orig"})
	}
	ctr = ctr.WithExec([]string{"go", "mod", "tidy"})
	for _, f := range moduleFiles {
		ctr = ctr.WithExec([]string{"diff", "-u", f + ".orig", f})
	}

	out, err := ctr.Stdout(ctx)

	var execErr *dagger.ExecError
	if errors.As(err, &execErr) {
		return "", fmt.Errorf(
			"module files are not tidy: run 'go mod tidy' and commit the result\n\n%s",
			execErr.Stdout,
		)
	}
	if err != nil {
		return "", fmt.Errorf("unexpected error: %w", err)
	}

	return fmt.Sprintf("go.mod and go.sum are tidy: %s", out), nil
}
