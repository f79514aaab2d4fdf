// Package discovery enumerates filesystem subtrees for files or directories with a given base name.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

const (
	accessFaultTemplateConstant       = "root %s is not accessible: %v"
	rootNotDirectoryMessageConstant   = "not a directory"
	absolutePathErrorTemplateConstant = "unable to resolve absolute path for %s: %w"
	skippedEntryErrorTemplateConstant = "entry %s skipped: %w"
)

var errRootNotDirectory = errors.New(rootNotDirectoryMessageConstant)

// AccessFaultError reports a root directory that cannot be walked at all.
type AccessFaultError struct {
	Root  string
	Cause error
}

func (fault AccessFaultError) Error() string {
	return fmt.Sprintf(accessFaultTemplateConstant, fault.Root, fault.Cause)
}

func (fault AccessFaultError) Unwrap() error {
	return fault.Cause
}

// WalkEntry is one result of a walk: either a matching path or an entry the walk had to skip.
// Root is the resolved absolute root the walk started from. SkipReason is non-nil when Path could
// not be read; Path then names the unreadable entry rather than a match.
type WalkEntry struct {
	Root       string
	Path       string
	SkipReason error
}

// Matched reports whether the entry is a successful match.
func (entry WalkEntry) Matched() bool {
	return entry.SkipReason == nil
}

// TreeWalker finds entries whose base name equals a target name.
//
// Hidden directories are descended into. Symbolic links below the root are
// reported as entries but never followed, which keeps the walk free of cycles.
type TreeWalker struct{}

// NewTreeWalker constructs a TreeWalker backed by filepath.WalkDir.
func NewTreeWalker() *TreeWalker {
	return &TreeWalker{}
}

// ResolveRoot returns the absolute, symlink-free form of root, or an AccessFaultError.
func (walker *TreeWalker) ResolveRoot(root string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", AccessFaultError{Root: root, Cause: fmt.Errorf(absolutePathErrorTemplateConstant, root, absoluteError)}
	}

	resolvedRoot, resolveError := filepath.EvalSymlinks(absoluteRoot)
	if resolveError != nil {
		return "", AccessFaultError{Root: root, Cause: resolveError}
	}

	rootInfo, statError := os.Stat(resolvedRoot)
	if statError != nil {
		return "", AccessFaultError{Root: root, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return "", AccessFaultError{Root: root, Cause: errRootNotDirectory}
	}
	return resolvedRoot, nil
}

// Walk returns a lazy sequence over the entries beneath root named targetName, in lexical walk order.
// Each range over the sequence performs a fresh walk.
func (walker *TreeWalker) Walk(root string, targetName string) (iter.Seq[WalkEntry], error) {
	resolvedRoot, resolveError := walker.ResolveRoot(root)
	if resolveError != nil {
		return nil, resolveError
	}

	return func(yield func(WalkEntry) bool) {
		_ = filepath.WalkDir(resolvedRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				skipped := WalkEntry{Root: resolvedRoot, Path: path, SkipReason: fmt.Errorf(skippedEntryErrorTemplateConstant, path, walkError)}
				if !yield(skipped) {
					return fs.SkipAll
				}
				if directoryEntry != nil && directoryEntry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if directoryEntry.Name() != targetName {
				return nil
			}

			if !yield(WalkEntry{Root: resolvedRoot, Path: path}) {
				return fs.SkipAll
			}
			return nil
		})
	}, nil
}

// Matches collects the matched paths of a walk, discarding skipped entries.
func (walker *TreeWalker) Matches(root string, targetName string) ([]string, error) {
	entries, walkError := walker.Walk(root, targetName)
	if walkError != nil {
		return nil, walkError
	}

	var matches []string
	for entry := range entries {
		if entry.Matched() {
			matches = append(matches, entry.Path)
		}
	}
	return matches, nil
}
