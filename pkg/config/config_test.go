package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"skylift/pkg/detect"
)

func TestParse(t *testing.T) {
	opts, err := Parse([]byte(`
tag = "canary"
framework = "nextjs"
devCommand = "next dev"
buildCommand = "next build"
outputDirectory = "out"
cleanUrls = true
trailingSlash = true
handleMiss = true
ignoreBuildScript = true
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Tag != "canary" || !opts.CleanURLs || !opts.TrailingSlash || !opts.HandleMiss || !opts.IgnoreBuildScript {
		t.Errorf("opts = %+v", opts)
	}
	ps := opts.ProjectSettings
	if ps.Framework != "nextjs" || ps.DevCommand != "next dev" {
		t.Errorf("projectSettings = %+v", ps)
	}
	if ps.BuildCommand == nil || *ps.BuildCommand != "next build" {
		t.Errorf("buildCommand = %v", ps.BuildCommand)
	}
	if ps.OutputDirectory == nil || *ps.OutputDirectory != "out" {
		t.Errorf("outputDirectory = %v", ps.OutputDirectory)
	}
}

func TestParseEmptyStringSurvives(t *testing.T) {
	opts, err := Parse([]byte(`buildCommand = ""`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.ProjectSettings.BuildCommand == nil || *opts.ProjectSettings.BuildCommand != "" {
		t.Errorf("buildCommand = %v, want explicit empty string", opts.ProjectSettings.BuildCommand)
	}
	if opts.ProjectSettings.OutputDirectory != nil {
		t.Errorf("outputDirectory = %v, want unset", opts.ProjectSettings.OutputDirectory)
	}
}

func TestParseFunctionsKeepDeclarationOrder(t *testing.T) {
	opts, err := Parse([]byte(`
[functions."api/z.js"]
memory = 192

[functions."api/a.js"]
maxDuration = 60

[functions."api/m.js"]
runtime = "php@1.0.0"
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Functions == nil {
		t.Fatal("functions not decoded")
	}
	keys := opts.Functions.Keys()
	want := []string{"api/z.js", "api/a.js", "api/m.js"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	fn, ok := opts.Functions.Get("api/z.js")
	if !ok || fn.Memory == nil || *fn.Memory != 192 {
		t.Errorf("api/z.js config = %+v", fn)
	}
	fn, ok = opts.Functions.Get("api/m.js")
	if !ok || fn.Runtime != "php@1.0.0" {
		t.Errorf("api/m.js config = %+v", fn)
	}
}

func TestParseNoFunctions(t *testing.T) {
	opts, err := Parse([]byte(`tag = "canary"`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Functions != nil {
		t.Errorf("functions = %+v, want nil", opts.Functions)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte(`tag = `)); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields zero options", func(t *testing.T) {
		opts, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if !reflect.DeepEqual(opts, detect.Options{}) {
			t.Errorf("opts = %+v, want zero value", opts)
		}
	})

	t.Run("present file is parsed", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte(`tag = "canary"`), 0o644); err != nil {
			t.Fatal(err)
		}
		opts, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if opts.Tag != "canary" {
			t.Errorf("tag = %q, want canary", opts.Tag)
		}
	})
}
