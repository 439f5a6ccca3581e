// Package project locates and describes an Inko project rooted at an
// inko.toml manifest.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file looked up in the root
// directory.
const ManifestName = "inko.toml"

// SourceExtension is the extension of compilable source files.
const SourceExtension = ".inko"

type manifest struct {
	Project struct {
		Name   string `toml:"name"`
		Source string `toml:"source"`
		Output string `toml:"output"`
	} `toml:"project"`
}

// Project is a loaded manifest with its paths resolved against the
// project root.
type Project struct {
	RootDir string
	Name    string
	SrcDir  string
	OutDir  string
}

// Load reads the manifest in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the manifest in the given root directory. The source
// and output directories default to "src" and "build" when the
// manifest leaves them out.
func LoadFrom(rootDir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ManifestName, err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestName, err)
	}

	if m.Project.Source == "" {
		m.Project.Source = "src"
	}
	if m.Project.Output == "" {
		m.Project.Output = "build"
	}

	return &Project{
		RootDir: rootDir,
		Name:    m.Project.Name,
		SrcDir:  filepath.Join(rootDir, m.Project.Source),
		OutDir:  filepath.Join(rootDir, m.Project.Output),
	}, nil
}

// SourceFiles walks the source directory and returns every source
// file in it, in walk order.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(p.SrcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if filepath.Ext(path) == SourceExtension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.SrcDir, err)
	}

	return files, nil
}
