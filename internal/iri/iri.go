// Package iri resolves relative IRI references against a base IRI. It
// implements the subset of RFC 3986 section 5 that Turtle/TriG documents
// actually exercise: scheme-relative, network-path, absolute-path, and
// relative-path references, plus dot-segment removal.
package iri

import "strings"

// IsAbsolute reports whether s has a scheme component ("name:"), which in
// Turtle/TriG means it never needs resolution against a base.
func IsAbsolute(s string) bool {
	colon := strings.Index(s, ":")
	if colon < 1 {
		return false
	}
	for i := 0; i < colon; i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isAlpha && (i == 0 || !((c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.')) {
			return false
		}
	}
	return true
}

// Resolve resolves relative against base per RFC 3986 section 5.3,
// restricted to the reference forms that appear in IRIREFs. An empty base
// with a non-absolute relative IRI is returned unresolved; callers that
// require an absolute result must reject that case themselves.
func Resolve(base, relative string) string {
	if relative == "" {
		return base
	}
	if base == "" {
		return relative
	}

	if strings.HasPrefix(relative, "#") {
		b := base
		if idx := strings.Index(b, "#"); idx >= 0 {
			b = b[:idx]
		}
		return b + relative
	}

	if strings.HasPrefix(relative, "?") {
		b := base
		if idx := strings.Index(b, "?"); idx >= 0 {
			b = b[:idx]
		} else if idx := strings.Index(b, "#"); idx >= 0 {
			b = b[:idx]
		}
		return b + relative
	}

	if strings.HasPrefix(relative, "//") {
		schemeEnd := strings.Index(base, ":")
		if schemeEnd < 0 {
			return relative
		}
		return base[:schemeEnd+1] + relative
	}

	if strings.HasPrefix(relative, "/") {
		schemeEnd := strings.Index(base, ":")
		if schemeEnd < 0 {
			return relative
		}
		if schemeEnd+2 < len(base) && base[schemeEnd:schemeEnd+3] == "://" {
			authorityStart := schemeEnd + 3
			if pathStart := strings.Index(base[authorityStart:], "/"); pathStart >= 0 {
				return normalizePath(base[:authorityStart+pathStart] + relative)
			}
			return normalizePath(base + relative)
		}
		return normalizePath(base[:schemeEnd+1] + relative)
	}

	baseWithoutQF := base
	if idx := strings.IndexAny(baseWithoutQF, "?#"); idx >= 0 {
		baseWithoutQF = baseWithoutQF[:idx]
	}

	var merged string
	if lastSlash := strings.LastIndex(baseWithoutQF, "/"); lastSlash >= 0 {
		merged = baseWithoutQF[:lastSlash+1] + relative
	} else {
		merged = baseWithoutQF + "/" + relative
	}
	return normalizePath(merged)
}

// normalizePath removes "." and ".." segments from the path component of
// uri, per RFC 3986 section 5.2.4, leaving scheme, authority, query, and
// fragment untouched.
func normalizePath(uri string) string {
	schemeEnd := strings.Index(uri, ":")
	if schemeEnd < 0 {
		return uri
	}

	var pathStart int
	if schemeEnd+2 < len(uri) && uri[schemeEnd:schemeEnd+3] == "://" {
		authorityStart := schemeEnd + 3
		slashIdx := strings.Index(uri[authorityStart:], "/")
		if slashIdx < 0 {
			return uri
		}
		pathStart = authorityStart + slashIdx
	} else {
		pathStart = schemeEnd + 1
	}

	prefix := uri[:pathStart]
	pathAndRest := uri[pathStart:]

	var path, queryAndFragment string
	if idx := strings.IndexAny(pathAndRest, "?#"); idx >= 0 {
		path = pathAndRest[:idx]
		queryAndFragment = pathAndRest[idx:]
	} else {
		path = pathAndRest
	}

	segments := strings.Split(path, "/")
	var normalized []string

	needsTrailingSlash := strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, "/.") ||
		strings.HasSuffix(path, "/..")

	for _, segment := range segments {
		switch segment {
		case ".":
			continue
		case "..":
			if len(normalized) > 1 && normalized[len(normalized)-1] != ".." {
				normalized = normalized[:len(normalized)-1]
			} else if len(normalized) == 1 && normalized[0] != "" {
				normalized = normalized[:len(normalized)-1]
			}
		default:
			normalized = append(normalized, segment)
		}
	}

	result := strings.Join(normalized, "/")
	if needsTrailingSlash && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	if result == "" {
		result = "/"
	}

	return prefix + result + queryAndFragment
}
