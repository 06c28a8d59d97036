// Package discover finds the protocol documents to compile under a set of
// search roots.
//
// Each root is laid out like the wayland and wayland-protocols source
// trees:
//
//	<root>/wayland.xml          core protocol
//	<root>/stable/**/*.xml      stable protocols
//	<root>/unstable/**/*.xml    unstable protocols
//	<root>/staging/**/*.xml     staging protocols
//
// An unstable protocol that has been promoted to stable in the same root
// is dropped.
package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"syscall"
)

// Category is the stability class of a discovered document.
type Category int

const (
	CategoryCore Category = iota
	CategoryStable
	CategoryUnstable
	CategoryStaging
)

func (c Category) String() string {
	switch c {
	case CategoryCore:
		return "core"
	case CategoryStable:
		return "stable"
	case CategoryUnstable:
		return "unstable"
	case CategoryStaging:
		return "staging"
	default:
		return "unknown"
	}
}

// Document is one discovered schema document.
type Document struct {
	Path     string
	Root     string
	Category Category
}

// CoreName is the file name of the core protocol document.
const CoreName = "wayland.xml"

// Find returns the documents under each root, in root order. Within a
// root the order is core, stable, surviving unstable, then staging, each
// group sorted by path. Missing roots and subtrees contribute nothing.
// A file reachable through more than one root is reported once.
func Find(roots ...string) ([]Document, error) {
	var docs []Document
	seen := make(map[string]bool)

	for _, root := range roots {
		found, err := findRoot(root)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			key, err := filepath.Abs(d.Path)
			if err != nil {
				key = d.Path
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			docs = append(docs, d)
		}
	}

	return docs, nil
}

// Paths returns the path of every document.
func Paths(docs []Document) []string {
	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = d.Path
	}
	return paths
}

func findRoot(root string) ([]Document, error) {
	var docs []Document

	core := filepath.Join(root, CoreName)
	if info, err := os.Stat(core); err == nil && !info.IsDir() {
		docs = append(docs, Document{Path: core, Root: root, Category: CategoryCore})
	} else if err != nil && !absent(err) {
		return nil, err
	}

	stable, err := walkXML(filepath.Join(root, "stable"))
	if err != nil {
		return nil, err
	}
	unstable, err := walkXML(filepath.Join(root, "unstable"))
	if err != nil {
		return nil, err
	}
	staging, err := walkXML(filepath.Join(root, "staging"))
	if err != nil {
		return nil, err
	}

	promoted := make(map[string]bool, len(stable))
	for _, p := range stable {
		promoted[normalizeStem(p)] = true
	}
	unstable = slices.DeleteFunc(unstable, func(p string) bool {
		return promoted[normalizeStem(p)]
	})

	for _, p := range stable {
		docs = append(docs, Document{Path: p, Root: root, Category: CategoryStable})
	}
	for _, p := range unstable {
		docs = append(docs, Document{Path: p, Root: root, Category: CategoryUnstable})
	}
	for _, p := range staging {
		docs = append(docs, Document{Path: p, Root: root, Category: CategoryStaging})
	}
	return docs, nil
}

// walkXML returns every .xml file below dir, sorted.
func walkXML(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && absent(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

// absent reports whether err means there is nothing at a path, including
// a path that runs through a regular file.
func absent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

var versionPart = regexp.MustCompile(`^v[0-9]+$`)

// normalizeStem strips the "unstable" and "v<N>" parts from a document's
// dash-separated file stem, so "xdg-shell-unstable-v6.xml" and
// "xdg-shell.xml" compare equal.
func normalizeStem(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "-")
	kept := parts[:0]
	for _, p := range parts {
		if p == "unstable" || versionPart.MatchString(p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "-")
}
