// Package handlers enumerates the build handlers that detection can assign to
// project files. Handlers are identified by a closed kind plus an optional
// release tag; resolving an identifier to an executable build is the job of
// an external system.
package handlers

import "strings"

// Kind identifies a build handler.
type Kind int

const (
	// Node builds JavaScript and TypeScript serverless functions.
	Node Kind = iota
	// Go builds Go serverless functions.
	Go
	// Python builds Python serverless functions.
	Python
	// Ruby builds Ruby serverless functions.
	Ruby
	// Framework runs a framework-aware frontend build.
	Framework
	// StaticBuild runs a build command and serves its output directory.
	StaticBuild
	// Static serves files as-is with no build step.
	Static
)

// String returns the stable handler identifier.
func (k Kind) String() string {
	switch k {
	case Node:
		return "node"
	case Go:
		return "go"
	case Python:
		return "python"
	case Ruby:
		return "ruby"
	case Framework:
		return "framework"
	case StaticBuild:
		return "static-build"
	case Static:
		return "static"
	}
	return "unknown"
}

// Handler pairs a handler kind with an optional release tag.
type Handler struct {
	Kind Kind
	Tag  string
}

// ID returns the serialized handler identifier, e.g. "node" or "node@canary".
func (h Handler) ID() string {
	if h.Tag == "" {
		return h.Kind.String()
	}
	return h.Kind.String() + "@" + h.Tag
}

// ForFile resolves the default handler for a serverless source file by
// extension. Go test files never resolve to a handler.
func ForFile(filePath, tag string) (Handler, bool) {
	switch {
	case strings.HasSuffix(filePath, ".js"),
		strings.HasSuffix(filePath, ".mjs"),
		strings.HasSuffix(filePath, ".ts"):
		return Handler{Kind: Node, Tag: tag}, true
	case strings.HasSuffix(filePath, ".go"):
		if strings.HasSuffix(filePath, "_test.go") {
			return Handler{}, false
		}
		return Handler{Kind: Go, Tag: tag}, true
	case strings.HasSuffix(filePath, ".py"):
		return Handler{Kind: Python, Tag: tag}, true
	case strings.HasSuffix(filePath, ".rb"):
		return Handler{Kind: Ruby, Tag: tag}, true
	}
	return Handler{}, false
}
