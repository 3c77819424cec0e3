package detect

import (
	"fmt"
	"path"
	"strings"

	"skylift/pkg/handlers"
	"skylift/pkg/routepath"
)

// compiledRoute pairs a generated route with its dynamic flag.
type compiledRoute struct {
	route     Route
	isDynamic bool
}

// compileRoute converts one serverless file path into an anchored match
// pattern with one capture group per dynamic segment and a capture-driven
// destination.
//
// In miss-handling mode the destination drops the file extension and the
// route is marked check so the routing engine re-evaluates later phases
// after a match. When clean URLs are also requested, the extension-bearing
// alternative is omitted from the pattern entirely.
func compileRoute(filePath string, handleMiss, cleanURLs bool) compiledRoute {
	parts := strings.Split(filePath, "/")
	counter := 1
	var query []string
	isDynamic := false

	srcParts := make([]string, len(parts))
	for i, segment := range parts {
		name, dynamic := routepath.SegmentName(segment)
		last := i == len(parts)-1
		switch {
		case dynamic:
			query = append(query, fmt.Sprintf("%s=$%d", name, counter))
			counter++
			isDynamic = true
			srcParts[i] = "([^/]+)"
		case last:
			stem := routepath.Stem(segment)
			ext := path.Ext(segment)
			isIndex := stem == "index"
			prefix := ""
			if isIndex {
				prefix = "/"
			}
			var names []string
			if isIndex {
				names = append(names, prefix)
			} else {
				names = append(names, stem+"/")
			}
			names = append(names, prefix+routepath.Escape(stem))
			if !(handleMiss && cleanURLs) {
				names = append(names, prefix+routepath.Escape(stem+ext))
			}
			alt := "(" + strings.Join(names, "|") + ")"
			if isIndex {
				// The whole group is optional so a bare directory matches.
				alt += "?"
			}
			srcParts[i] = alt
		default:
			srcParts[i] = routepath.Escape(segment)
		}
	}

	base := parts[len(parts)-1]
	fileExt := path.Ext(base)
	isIndexFile := routepath.Stem(base) == "index"

	queryString := ""
	if len(query) > 0 {
		queryString = "?" + strings.Join(query, "&")
	}

	var src string
	if isIndexFile {
		// The optional index group already starts with a slash, so the
		// preceding fragments are joined without a separator.
		src = "^/" + strings.Join(srcParts[:len(srcParts)-1], "/") + srcParts[len(srcParts)-1] + "$"
	} else {
		src = "^/" + strings.Join(srcParts, "/") + "$"
	}

	if handleMiss {
		extensionless := filePath
		if fileExt != "" {
			extensionless = strings.TrimSuffix(filePath, fileExt)
		}
		return compiledRoute{
			route:     Route{Src: src, Dest: "/" + extensionless + queryString, Check: true},
			isDynamic: isDynamic,
		}
	}
	return compiledRoute{
		route:     Route{Src: src, Dest: "/" + filePath + queryString},
		isDynamic: isDynamic,
	}
}

// apiExtensions collects the distinct file extensions, without the leading
// dot, of the zero-config serverless builders in first-seen order.
func apiExtensions(builders []Builder) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, b := range builders {
		if !b.Config.ZeroConfig || !strings.HasPrefix(b.Src, apiDir+"/") {
			continue
		}
		ext := path.Ext(b.Src)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext[1:])
	}
	return exts
}

// assembleRoutes produces the three ordered route lists. Ordering is a
// strict contract: the external routing engine evaluates rules top to bottom.
func assembleRoutes(apiRoutes, dynamicRoutes []Route, apiBuilders []Builder, frontend *Builder, opts Options) (defaultRoutes, redirectRoutes, rewriteRoutes []Route) {
	defaultRoutes = []Route{}
	redirectRoutes = []Route{}
	rewriteRoutes = []Route{}

	if len(apiRoutes) > 0 {
		if opts.HandleMiss {
			if exts := apiExtensions(apiBuilders); len(exts) > 0 {
				group := "(?:\\.(?:" + strings.Join(exts, "|") + "))"
				if opts.CleanURLs {
					indexLoc := "/$1"
					extLoc := "/api$1"
					if opts.TrailingSlash {
						indexLoc = "/$1/"
						extLoc = "/api$1/"
					}
					redirectRoutes = append(redirectRoutes, Route{
						Src:     "^/(api(?:.+)?)/index" + group + "?/?$",
						Headers: map[string]string{"Location": indexLoc},
						Status:  308,
					})
					redirectRoutes = append(redirectRoutes, Route{
						Src:     "^/api(.+)" + group + "/?$",
						Headers: map[string]string{"Location": extLoc},
						Status:  308,
					})
				} else {
					defaultRoutes = append(defaultRoutes, Route{Handle: "miss"})
					defaultRoutes = append(defaultRoutes, Route{
						Src:   "^/api/(.+)" + group + "$",
						Dest:  "/api/$1",
						Check: true,
					})
				}
			}
			rewriteRoutes = append(rewriteRoutes, dynamicRoutes...)
			rewriteRoutes = append(rewriteRoutes, Route{
				Src:      "^/api(/.*)?$",
				Status:   404,
				Continue: true,
			})
		} else {
			defaultRoutes = append(defaultRoutes, apiRoutes...)
			defaultRoutes = append(defaultRoutes, Route{Status: 404, Src: "^/api(/.*)?$"})
		}
	}

	if !opts.HandleMiss && frontend != nil && frontend.Handler != nil &&
		frontend.Handler.Kind == handlers.Static && frontend.Config.OutputDirectory != "" {
		defaultRoutes = append(defaultRoutes, Route{
			Src:  "/(.*)",
			Dest: "/" + frontend.Config.OutputDirectory + "/$1",
		})
	}

	return defaultRoutes, redirectRoutes, rewriteRoutes
}
