package detect

import "skylift/pkg/handlers"

// PackageJSON is the subset of a package manifest that detection inspects.
type PackageJSON struct {
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
}

// hasDependency reports whether name appears in dependencies or
// devDependencies.
func (p *PackageJSON) hasDependency(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// ProjectSettings carries explicit user overrides. The pointer fields
// distinguish "unset" from "set to the empty string": an explicit empty build
// command or output directory forces a plain static frontend.
type ProjectSettings struct {
	Framework       string  `json:"framework,omitempty"`
	DevCommand      string  `json:"devCommand,omitempty"`
	BuildCommand    *string `json:"buildCommand,omitempty"`
	OutputDirectory *string `json:"outputDirectory,omitempty"`
}

// Options configures one detection run.
type Options struct {
	// Tag is an optional release tag appended to every handler identifier.
	Tag string

	// Functions is the user-declared glob-to-configuration map, in
	// declaration order.
	Functions *Functions

	// IgnoreBuildScript suppresses the missing_build_script error for
	// manifests that declare no build step.
	IgnoreBuildScript bool

	ProjectSettings ProjectSettings

	// CleanURLs requests extensionless canonical URLs for serverless routes.
	CleanURLs bool

	// TrailingSlash controls the canonical form CleanURLs redirects to.
	TrailingSlash bool

	// HandleMiss switches route generation to miss-handling mode, where
	// unmatched requests fall through additional routing phases instead of
	// being resolved by a single static rule.
	HandleMiss bool
}

// buildCommand returns the explicit build command, or "" when unset.
func (o Options) buildCommand() string {
	if o.ProjectSettings.BuildCommand == nil {
		return ""
	}
	return *o.ProjectSettings.BuildCommand
}

// Config is the per-builder configuration block. It is populated at
// construction time and never shared between builders.
type Config struct {
	ZeroConfig      bool                      `json:"zeroConfig"`
	Functions       map[string]FunctionConfig `json:"functions,omitempty"`
	IncludeFiles    string                    `json:"includeFiles,omitempty"`
	ExcludeFiles    string                    `json:"excludeFiles,omitempty"`
	Framework       string                    `json:"framework,omitempty"`
	DevCommand      string                    `json:"devCommand,omitempty"`
	BuildCommand    string                    `json:"buildCommand,omitempty"`
	OutputDirectory string                    `json:"outputDirectory,omitempty"`
}

// Builder assigns a build handler to a source path or glob. Use is the
// serialized handler identifier; Handler carries the resolved kind when the
// identifier comes from the closed handler set rather than a user-declared
// runtime.
type Builder struct {
	Use     string            `json:"use"`
	Src     string            `json:"src"`
	Config  Config            `json:"config"`
	Handler *handlers.Handler `json:"-"`
}

// Route is one rule in an ordered route table. Rules are evaluated top to
// bottom by the external routing engine, so slice order is a contract.
type Route struct {
	Src      string            `json:"src,omitempty"`
	Dest     string            `json:"dest,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Status   int               `json:"status,omitempty"`
	Handle   string            `json:"handle,omitempty"`
	Check    bool              `json:"check,omitempty"`
	Continue bool              `json:"continue,omitempty"`
}

// Result is the output of a successful detection run. A failed run returns
// a nil Result alongside the coded error instead.
type Result struct {
	Builders       []Builder `json:"builders"`
	Warnings       []*Error  `json:"warnings,omitempty"`
	DefaultRoutes  []Route   `json:"defaultRoutes"`
	RedirectRoutes []Route   `json:"redirectRoutes"`
	RewriteRoutes  []Route   `json:"rewriteRoutes"`
}
