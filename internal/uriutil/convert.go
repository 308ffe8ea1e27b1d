// Package uriutil converts between file paths and file:// URIs.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI returns the file:// URI of path, made absolute. Segments are
// percent-encoded and drive letters get a leading slash, as in
// file:///C:/src.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file://" + strings.Join(segments, "/")
}

// URIToPath returns the file path of a file:// URI. Other strings are
// returned with any file:// prefix removed.
func URIToPath(uri string) string {
	var path string
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		path = u.Path
		if u.Host != "" && u.Host != "localhost" {
			path = "//" + u.Host + path
		}
	} else {
		path = strings.TrimPrefix(uri, "file://")
	}
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// IsFileURI reports whether uri uses the file scheme.
func IsFileURI(uri string) bool {
	return strings.HasPrefix(uri, "file://")
}
