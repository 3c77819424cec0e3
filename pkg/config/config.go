// Package config loads project-level detection settings from skylift.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"skylift/pkg/detect"
)

// FileName is the project settings file read from the project root.
const FileName = "skylift.toml"

// File mirrors the skylift.toml schema. BuildCommand and OutputDirectory are
// pointers so an explicit empty string survives decoding; it forces a plain
// static frontend.
type File struct {
	Tag               string                           `toml:"tag"`
	Framework         string                           `toml:"framework"`
	DevCommand        string                           `toml:"devCommand"`
	BuildCommand      *string                          `toml:"buildCommand"`
	OutputDirectory   *string                          `toml:"outputDirectory"`
	CleanURLs         bool                             `toml:"cleanUrls"`
	TrailingSlash     bool                             `toml:"trailingSlash"`
	HandleMiss        bool                             `toml:"handleMiss"`
	IgnoreBuildScript bool                             `toml:"ignoreBuildScript"`
	Functions         map[string]detect.FunctionConfig `toml:"functions"`
}

// Load reads skylift.toml from projectPath. A missing file yields zero
// options, not an error.
func Load(projectPath string) (detect.Options, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return detect.Options{}, nil
		}
		return detect.Options{}, err
	}
	return Parse(data)
}

// Parse decodes raw TOML into detection options. Function globs keep their
// declaration order, recovered from the decoder metadata, because matching
// and error reporting iterate globs in declared order.
func Parse(data []byte) (detect.Options, error) {
	var file File
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return detect.Options{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	opts := detect.Options{
		Tag:               file.Tag,
		IgnoreBuildScript: file.IgnoreBuildScript,
		CleanURLs:         file.CleanURLs,
		TrailingSlash:     file.TrailingSlash,
		HandleMiss:        file.HandleMiss,
		ProjectSettings: detect.ProjectSettings{
			Framework:       file.Framework,
			DevCommand:      file.DevCommand,
			BuildCommand:    file.BuildCommand,
			OutputDirectory: file.OutputDirectory,
		},
	}

	if len(file.Functions) > 0 {
		fns := detect.NewFunctions()
		for _, key := range md.Keys() {
			if len(key) < 2 || key[0] != "functions" {
				continue
			}
			glob := key[1]
			if cfg, ok := file.Functions[glob]; ok {
				if _, declared := fns.Get(glob); !declared {
					fns.Set(glob, cfg)
				}
			}
		}
		opts.Functions = fns
	}

	return opts, nil
}
