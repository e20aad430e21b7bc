package checker

import (
	"path/filepath"
	"regexp"
	"strings"
)

// targetKind classifies a link destination's path part.
type targetKind int

const (
	targetLocal targetKind = iota
	targetURL
	targetEmail
)

var urlSchemes = []string{"http://", "https://", "ftp://"}

// RFC 5322 addr-spec, restricted to the strict dot-atom form.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// classify splits a raw destination on its first '#' into a path part and an
// optional fragment, then decides whether the path part is external. External
// targets are recognized and skipped, never fetched.
func classify(destination string) (target, fragment string, hasFragment bool, kind targetKind) {
	target = destination
	if idx := strings.Index(destination, "#"); idx != -1 {
		target = destination[:idx]
		fragment = destination[idx+1:]
		hasFragment = true
	}

	for _, scheme := range urlSchemes {
		if strings.HasPrefix(target, scheme) {
			return target, fragment, hasFragment, targetURL
		}
	}
	if emailPattern.MatchString(target) {
		return target, fragment, hasFragment, targetEmail
	}
	return target, fragment, hasFragment, targetLocal
}

// resolveLocal maps a local target to a concrete path relative to the file
// containing the link. An empty target refers to the containing file itself.
func resolveLocal(containingFile, target string) string {
	if target == "" {
		return containingFile
	}
	return filepath.Join(filepath.Dir(containingFile), target)
}
