// Package workspace enumerates the script and variable-definition files of a
// project tree and runs symbol queries across them.
package workspace

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

var (
	DefaultScriptExts   = []string{".script", ".urscript"}
	DefaultVariableExts = []string{".variables"}
	DefaultIgnoreDirs   = []string{".git", ".svn", ".hg", ".vscode", ".idea"}
)

// Walker lists candidate files under Root
type Walker struct {
	Root         string
	ScriptExts   []string
	VariableExts []string
	IgnoreDirs   []string
}

// NewWalker creates a walker with the default extension and ignore lists
func NewWalker(root string) *Walker {
	return &Walker{
		Root:         root,
		ScriptExts:   DefaultScriptExts,
		VariableExts: DefaultVariableExts,
		IgnoreDirs:   DefaultIgnoreDirs,
	}
}

// Files holds walk results bucketed by extension, each sorted by path
type Files struct {
	Scripts   []string
	Variables []string
}

// Walk recursively lists files under Root. The file at exclude, typically the
// document already open in the editor, is left out.
func (w *Walker) Walk(exclude string) (*Files, error) {
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", w.Root, err)
	}
	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			exclude = abs
		}
	}

	files := &Files{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("skipping %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path != root && slices.Contains(w.IgnoreDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if path == exclude {
			return nil
		}
		switch {
		case hasExt(path, w.VariableExts):
			files.Variables = append(files.Variables, path)
		case hasExt(path, w.ScriptExts):
			files.Scripts = append(files.Scripts, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files.Scripts)
	sort.Strings(files.Variables)
	return files, nil
}

// IsScript reports whether path has a script extension
func (w *Walker) IsScript(path string) bool {
	return hasExt(path, w.ScriptExts)
}

// IsVariables reports whether path has a variable-definition extension
func (w *Walker) IsVariables(path string) bool {
	return hasExt(path, w.VariableExts)
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
