// Package gitinfo reads repository metadata directly from the git object store.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DetachedHeadLabelConstant is reported when HEAD points at a commit rather than a branch.
const DetachedHeadLabelConstant = "DETACHED"

const (
	openRepositoryErrorTemplateConstant = "opening git repository %s: %w"
	readHeadErrorTemplateConstant       = "reading HEAD of %s: %w"
)

// BranchReader resolves the checked-out branch of a repository with go-git.
type BranchReader struct{}

// NewBranchReader constructs a BranchReader.
func NewBranchReader() *BranchReader {
	return &BranchReader{}
}

// CurrentBranch returns the short branch name HEAD refers to, including unborn branches,
// or DetachedHeadLabelConstant for a detached HEAD.
func (reader *BranchReader) CurrentBranch(repositoryPath string) (string, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return "", fmt.Errorf(openRepositoryErrorTemplateConstant, repositoryPath, openError)
	}

	headReference, referenceError := repository.Reference(plumbing.HEAD, false)
	if referenceError != nil {
		return "", fmt.Errorf(readHeadErrorTemplateConstant, repositoryPath, referenceError)
	}

	if headReference.Type() != plumbing.SymbolicReference {
		return DetachedHeadLabelConstant, nil
	}
	return headReference.Target().Short(), nil
}

// CurrentBranches reads the branch of every repository, leaving unreadable entries blank.
func (reader *BranchReader) CurrentBranches(repositoryPaths []string) []string {
	branches := make([]string, len(repositoryPaths))
	for repositoryIndex, repositoryPath := range repositoryPaths {
		branch, branchError := reader.CurrentBranch(repositoryPath)
		if branchError == nil {
			branches[repositoryIndex] = branch
		}
	}
	return branches
}
