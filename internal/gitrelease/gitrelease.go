// Package gitrelease records chart releases in the enclosing Git repository:
// it commits the rewritten Chart.yaml, tags the commit with the
// <chart>-<version> naming used by chart releasers, and can report the
// highest version already tagged for a chart.
package gitrelease

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

func open(repoDir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", repoDir, err)
	}
	return repo, nil
}

// Commit stages chartFile
// (a path relative to the repository root)
// and commits it with the given message.
func Commit(repoDir, chartFile, message string) (plumbing.Hash, error) {
	repo, err := open(repoDir)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree of %s: %w", repoDir, err)
	}
	if _, err := wt.Add(chartFile); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", chartFile, err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing %s: %w", chartFile, err)
	}
	return hash, nil
}

// Tag creates the release tag name-version on the given commit and returns
// the tag name.
// An already-existing tag is an error: a chart version must not be released
// twice.
func Tag(repoDir, name, version string, hash plumbing.Hash) (string, error) {
	tag := fmt.Sprintf("%s-%s", name, version)

	repo, err := open(repoDir)
	if err != nil {
		return tag, err
	}
	if _, err := repo.Tag(tag); err == nil {
		return tag, fmt.Errorf("tag %s already exists", tag)
	} else if !errors.Is(err, git.ErrTagNotFound) {
		return tag, fmt.Errorf("checking for tag %s: %w", tag, err)
	}
	if _, err := repo.CreateTag(tag, hash, nil); err != nil {
		return tag, fmt.Errorf("creating tag %s: %w", tag, err)
	}
	return tag, nil
}

// LatestTag returns the highest released version among tags named
// name-VERSION, or "" when the chart has never been tagged.
// Tags whose version part is not valid semver are skipped.
func LatestTag(repoDir, name string) (string, error) {
	repo, err := open(repoDir)
	if err != nil {
		return "", err
	}
	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("getting tags of %s: %w", repoDir, err)
	}

	var result string
	for {
		tref, err := tags.Next()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return "", fmt.Errorf("iterating over tags of %s: %w", repoDir, err)
		}
		tag := strings.TrimPrefix(string(tref.Name()), "refs/tags/")
		rest, ok := strings.CutPrefix(tag, name+"-")
		if !ok {
			continue
		}
		if !semver.IsValid("v" + rest) {
			continue
		}
		if result == "" || semver.Compare("v"+result, "v"+rest) < 0 { // result < rest
			result = rest
		}
	}
}
