package detect

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/mod/semver"

	"skylift/pkg/handlers"
)

// FunctionConfig is a user-declared execution configuration keyed by a path
// glob. Memory and MaxDuration are pointers so that "absent" and "zero" stay
// distinguishable.
type FunctionConfig struct {
	Runtime      string `json:"runtime,omitempty" toml:"runtime"`
	Memory       *int   `json:"memory,omitempty" toml:"memory"`
	MaxDuration  *int   `json:"maxDuration,omitempty" toml:"maxDuration"`
	IncludeFiles string `json:"includeFiles,omitempty" toml:"includeFiles"`
	ExcludeFiles string `json:"excludeFiles,omitempty" toml:"excludeFiles"`
}

func (c FunctionConfig) empty() bool {
	return c.Runtime == "" && c.Memory == nil && c.MaxDuration == nil &&
		c.IncludeFiles == "" && c.ExcludeFiles == ""
}

// Functions maps path globs to function configurations in declaration order.
// Iteration order is part of the error-reporting contract: validation and
// matching always walk globs in the order they were declared.
type Functions struct {
	m *orderedmap.OrderedMap[string, FunctionConfig]
}

// NewFunctions returns an empty function map.
func NewFunctions() *Functions {
	return &Functions{m: orderedmap.New[string, FunctionConfig]()}
}

// Set declares or replaces the configuration for a glob. The first
// declaration fixes the glob's position.
func (f *Functions) Set(glob string, config FunctionConfig) {
	f.m.Set(glob, config)
}

// Len returns the number of declared globs.
func (f *Functions) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Get returns the configuration declared for glob.
func (f *Functions) Get(glob string) (FunctionConfig, bool) {
	if f == nil || f.m == nil {
		return FunctionConfig{}, false
	}
	return f.m.Get(glob)
}

// Keys returns the globs in declaration order.
func (f *Functions) Keys() []string {
	if f == nil || f.m == nil {
		return nil
	}
	keys := make([]string, 0, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Validate checks every declared glob and returns the first violation. The
// check order per glob is fixed so error reporting stays deterministic.
func (f *Functions) Validate() *Error {
	if f == nil || f.m == nil {
		return nil
	}
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		glob, config := pair.Key, pair.Value
		if len(glob) > 256 {
			return errf(CodeInvalidFunctionGlob,
				"Function globs must be less than 256 characters long.")
		}
		if config.empty() {
			return errf(CodeInvalidFunction,
				"Function must contain at least one property.")
		}
		if config.MaxDuration != nil && (*config.MaxDuration < 1 || *config.MaxDuration > 900) {
			return errf(CodeInvalidFunctionDuration,
				"Functions must have a duration between 1 and 900.")
		}
		if config.Memory != nil && (*config.Memory < 128 || *config.Memory > 3008 || *config.Memory%64 != 0) {
			return errf(CodeInvalidFunctionMemory,
				"Functions must have a memory value between 128 and 3008 in steps of 64.")
		}
		if strings.HasPrefix(glob, "/") {
			return errf(CodeInvalidFunctionSource,
				"The function path %q is invalid. The path must be relative to your project root and therefore cannot start with a slash.", glob)
		}
		if config.Runtime != "" {
			tag := config.Runtime[strings.LastIndex(config.Runtime, "@")+1:]
			if tag == "" || !semver.IsValid("v"+tag) {
				return errf(CodeInvalidFunctionRuntime,
					"Function runtimes must have a valid version, for example `go@1.19.0`.")
			}
		}
	}
	return nil
}

// Match finds the first declared glob that equals filePath or matches it with
// glob semantics. Declaration order wins when several globs could match.
func (f *Functions) Match(filePath string) (string, *FunctionConfig) {
	if f == nil || f.m == nil {
		return "", nil
	}
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == filePath {
			config := pair.Value
			return pair.Key, &config
		}
		if ok, _ := doublestar.Match(pair.Key, filePath); ok {
			config := pair.Value
			return pair.Key, &config
		}
	}
	return "", nil
}

// Unused returns the error for the first declared glob, in declaration
// order, that no file consumed. When the frontend is the framework handler,
// globs under its route directories are consumed by that handler internally
// and are tolerated.
func (f *Functions) Unused(used map[string]bool, frontend *Builder) *Error {
	if f == nil || f.m == nil {
		return nil
	}
	frameworkFrontend := frontend != nil && frontend.Handler != nil &&
		frontend.Handler.Kind == handlers.Framework
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		if used[pair.Key] {
			continue
		}
		if frameworkFrontend &&
			(strings.HasPrefix(pair.Key, "pages/") || strings.HasPrefix(pair.Key, "src/pages/")) {
			continue
		}
		return errf(CodeUnusedFunction,
			"The function for %s can't be handled by any builder.", pair.Key)
	}
	return nil
}

// ParseFunctions decodes a JSON functions object, preserving key declaration
// order and reporting shape violations with the same codes Validate uses.
func ParseFunctions(data []byte) (*Functions, *Error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, errf(CodeInvalidFunction,
			"Functions must be an object mapping path globs to configurations.")
	}
	fns := NewFunctions()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errf(CodeInvalidFunction, "Functions must be an object mapping path globs to configurations.")
		}
		glob, ok := keyTok.(string)
		if !ok {
			return nil, errf(CodeInvalidFunction, "Functions must be an object mapping path globs to configurations.")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errf(CodeInvalidFunction, "Function must be an object.")
		}
		config, perr := parseFunctionConfig(raw)
		if perr != nil {
			return nil, perr
		}
		fns.Set(glob, config)
	}
	return fns, nil
}

func parseFunctionConfig(raw json.RawMessage) (FunctionConfig, *Error) {
	var config FunctionConfig
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return config, errf(CodeInvalidFunction, "Function must be an object.")
	}
	var props map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &props); err != nil {
		return config, errf(CodeInvalidFunction, "Function must be an object.")
	}
	if v, ok := props["maxDuration"]; ok {
		n, err := decodeInt(v)
		if err != nil {
			return config, errf(CodeInvalidFunctionDuration,
				"Functions must have a duration between 1 and 900.")
		}
		config.MaxDuration = &n
	}
	if v, ok := props["memory"]; ok {
		n, err := decodeInt(v)
		if err != nil {
			return config, errf(CodeInvalidFunctionMemory,
				"Functions must have a memory value between 128 and 3008 in steps of 64.")
		}
		config.Memory = &n
	}
	if v, ok := props["runtime"]; ok {
		if err := json.Unmarshal(v, &config.Runtime); err != nil {
			return config, errf(CodeInvalidFunctionRuntime,
				"Function runtimes must have a valid version, for example `go@1.19.0`.")
		}
	}
	if v, ok := props["includeFiles"]; ok {
		if err := json.Unmarshal(v, &config.IncludeFiles); err != nil {
			return config, errf(CodeInvalidFunctionProperty,
				"The property `includeFiles` must be a string.")
		}
	}
	if v, ok := props["excludeFiles"]; ok {
		if err := json.Unmarshal(v, &config.ExcludeFiles); err != nil {
			return config, errf(CodeInvalidFunctionProperty,
				"The property `excludeFiles` must be a string.")
		}
	}
	if unknown := unknownProperties(props); len(unknown) > 0 {
		return config, errf(CodeInvalidFunctionProperty,
			"The property `%s` is not allowed.", unknown[0])
	}
	return config, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, err
	}
	n, err := num.Int64()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func unknownProperties(props map[string]json.RawMessage) []string {
	known := map[string]bool{
		"runtime": true, "memory": true, "maxDuration": true,
		"includeFiles": true, "excludeFiles": true,
	}
	var unknown []string
	for name := range props {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
