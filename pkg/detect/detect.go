// Package detect implements zero-configuration build-and-route detection.
// Given a flat list of project file paths, an optional package manifest, and
// an options record, it decides which build handler processes each serverless
// source file, which single handler covers the rest of the project, and the
// ordered routing rules that make file-system endpoints reachable.
//
// Detection is a pure function of its inputs: no filesystem, network, or
// process I/O happens here. Callers supply the file listing and manifest.
package detect

import (
	"sort"
	"strings"

	"skylift/pkg/handlers"
)

const (
	apiDir                 = "api"
	defaultOutputDirectory = "public"
)

// config-like files a static build can be pointed at when the project has no
// package manifest.
var entrypoints = []string{
	"package.json",
	"config.yaml",
	"config.toml",
	"config.json",
	"_config.yml",
	"config.yml",
	"config.rb",
}

// Detect runs zero-configuration detection over files. The returned error,
// always a *Error with a stable code, is mutually exclusive with the result:
// the first fatal error aborts the run and discards all progress. Warnings
// accompany a successful result.
func Detect(files []string, pkg *PackageJSON, opts Options) (*Result, error) {
	if err := opts.Functions.Validate(); err != nil {
		return nil, err
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var apiCandidates []string
	for _, f := range sorted {
		if isAPICandidate(f) {
			apiCandidates = append(apiCandidates, f)
		}
	}

	outputDirectory := defaultOutputDirectory
	if opts.ProjectSettings.OutputDirectory != nil {
		outputDirectory = *opts.ProjectSettings.OutputDirectory
	}

	cache := newPathCache()
	usedFunctions := make(map[string]bool)
	buildCommand := opts.buildCommand()

	var (
		apiBuilders          []Builder
		apiRoutes            []Route
		dynamicRoutes        []Route
		hasNonAPIFiles       bool
		usedOutputDirectory  bool
		hasFrameworkAPIFiles bool
		fallbackEntrypoint   string
	)

	for _, fileName := range sorted {
		if strings.HasPrefix(fileName, apiDir+"/") {
			if !isAPICandidate(fileName) {
				continue
			}
			builder := apiBuilderFor(fileName, opts)
			if builder == nil {
				continue
			}
			if err := conflictError(fileName, apiCandidates, cache); err != nil {
				return nil, err
			}
			compiled := compileRoute(fileName, opts.HandleMiss, opts.CleanURLs)
			apiRoutes = append(apiRoutes, compiled.route)
			if compiled.isDynamic {
				dynamicRoutes = append(dynamicRoutes, compiled.route)
			}
			for key := range builder.Config.Functions {
				usedFunctions[key] = true
			}
			apiBuilders = append(apiBuilders, *builder)
			continue
		}

		if fileName == "package.json" {
			continue
		}
		if strings.HasPrefix(fileName, "pages/api/") || strings.HasPrefix(fileName, "src/pages/api/") {
			hasFrameworkAPIFiles = true
		}
		hasNonAPIFiles = true
		if !usedOutputDirectory && outputDirectory != "" &&
			strings.HasPrefix(fileName, outputDirectory+"/") {
			usedOutputDirectory = true
		}
		if fallbackEntrypoint == "" && buildCommand != "" && !strings.Contains(fileName, "/") {
			fallbackEntrypoint = fileName
		}
	}

	hasBuildScript := pkg != nil && pkg.Scripts["build"] != ""
	explicitEmptyBuild := opts.ProjectSettings.BuildCommand != nil && *opts.ProjectSettings.BuildCommand == ""
	explicitEmptyOutput := opts.ProjectSettings.OutputDirectory != nil && *opts.ProjectSettings.OutputDirectory == ""

	var frontend *Builder
	switch {
	case explicitEmptyBuild || explicitEmptyOutput:
		frontend = staticFrontend(outputDirectory, opts)
	case hasBuildScript || buildCommand != "" || opts.ProjectSettings.Framework != "":
		frontend = buildFrontend(pkg, sorted, fallbackEntrypoint, opts)
	case pkg == nil && usedOutputDirectory:
		frontend = staticFrontend(outputDirectory, opts)
	case len(apiBuilders) > 0 && hasNonAPIFiles:
		h := handlers.Handler{Kind: handlers.Static, Tag: opts.Tag}
		frontend = &Builder{
			Use:     h.ID(),
			Src:     "!{api/**,package.json}",
			Config:  Config{ZeroConfig: true},
			Handler: &h,
		}
	}

	if frontend == nil && pkg != nil && len(apiBuilders) == 0 && !opts.IgnoreBuildScript {
		return nil, errf(CodeMissingBuildScript,
			"Your `package.json` file is missing a `build` property inside the `scripts` property.")
	}

	if err := opts.Functions.Unused(usedFunctions, frontend); err != nil {
		return nil, err
	}

	var warnings []*Error
	if len(apiBuilders) > 0 && hasFrameworkAPIFiles && pkg.hasDependency("next") {
		warnings = append(warnings, errf(CodeConflictingFiles,
			"Both `api` and `pages/api` contain serverless functions. The framework handler serves `pages/api`; files under `api` are built separately."))
	}

	builders := append([]Builder{}, apiBuilders...)
	if frontend != nil {
		builders = append(builders, *frontend)
	}

	defaultRoutes, redirectRoutes, rewriteRoutes := assembleRoutes(
		apiRoutes, dynamicRoutes, apiBuilders, frontend, opts)

	return &Result{
		Builders:       builders,
		Warnings:       warnings,
		DefaultRoutes:  defaultRoutes,
		RedirectRoutes: redirectRoutes,
		RewriteRoutes:  rewriteRoutes,
	}, nil
}

// isAPICandidate reports whether fileName is a serverless function candidate:
// under the api root, not hidden or private, not a nested dependency, and not
// a type declaration.
func isAPICandidate(fileName string) bool {
	if !strings.HasPrefix(fileName, apiDir+"/") {
		return false
	}
	if strings.Contains(fileName, "/.") || strings.Contains(fileName, "/_") {
		return false
	}
	if strings.Contains(fileName, "/node_modules/") {
		return false
	}
	if strings.HasSuffix(fileName, ".d.ts") {
		return false
	}
	return true
}

// apiBuilderFor resolves the handler for a serverless file, consulting the
// declared function map before the default extension table. A matched
// function entry is recorded on the builder config; a user-declared runtime
// replaces the handler identifier outright. Files with no match and no known
// extension produce no builder, which is not an error.
func apiBuilderFor(fileName string, opts Options) *Builder {
	key, fn := opts.Functions.Match(fileName)
	handler, known := handlers.ForFile(fileName, opts.Tag)

	var use string
	var resolved *handlers.Handler
	switch {
	case fn != nil && fn.Runtime != "":
		use = fn.Runtime
		if opts.Tag != "" {
			use += "@" + opts.Tag
		}
	case known:
		use = handler.ID()
		resolved = &handler
	default:
		return nil
	}

	config := Config{ZeroConfig: true}
	if key != "" && fn != nil {
		config.Functions = map[string]FunctionConfig{key: *fn}
		config.IncludeFiles = fn.IncludeFiles
		config.ExcludeFiles = fn.ExcludeFiles
	}
	return &Builder{Use: use, Src: fileName, Config: config, Handler: resolved}
}

// buildFrontend picks the framework-aware handler when the manifest depends
// on a known framework, else the generic static-build handler pointed at the
// first discovered config-like file.
func buildFrontend(pkg *PackageJSON, files []string, fallbackEntrypoint string, opts Options) *Builder {
	config := Config{ZeroConfig: true}
	framework := opts.ProjectSettings.Framework
	if framework != "" {
		config.Framework = framework
	}
	if opts.ProjectSettings.DevCommand != "" {
		config.DevCommand = opts.ProjectSettings.DevCommand
	}
	if cmd := opts.buildCommand(); cmd != "" {
		config.BuildCommand = cmd
	}
	if opts.ProjectSettings.OutputDirectory != nil && *opts.ProjectSettings.OutputDirectory != "" {
		config.OutputDirectory = *opts.ProjectSettings.OutputDirectory
	}

	if framework == "" && pkg.hasDependency("next") {
		framework = "nextjs"
	}
	if framework == "nextjs" {
		h := handlers.Handler{Kind: handlers.Framework, Tag: opts.Tag}
		return &Builder{Use: h.ID(), Src: "package.json", Config: config, Handler: &h}
	}

	src := ""
	if pkg != nil {
		src = "package.json"
	} else {
		src = firstEntrypoint(files)
		if src == "" {
			src = fallbackEntrypoint
		}
		if src == "" {
			src = "package.json"
		}
	}
	h := handlers.Handler{Kind: handlers.StaticBuild, Tag: opts.Tag}
	return &Builder{Use: h.ID(), Src: src, Config: config, Handler: &h}
}

// staticFrontend serves a prebuilt output directory as-is. An empty output
// directory serves the project root.
func staticFrontend(outputDirectory string, opts Options) *Builder {
	src := "**/*"
	config := Config{ZeroConfig: true}
	if outputDirectory != "" {
		src = outputDirectory + "/**/*"
		config.OutputDirectory = outputDirectory
	}
	h := handlers.Handler{Kind: handlers.Static, Tag: opts.Tag}
	return &Builder{Use: h.ID(), Src: src, Config: config, Handler: &h}
}

// firstEntrypoint returns the first config-like file present in files.
func firstEntrypoint(files []string) string {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	for _, candidate := range entrypoints {
		if present[candidate] {
			return candidate
		}
	}
	return ""
}
