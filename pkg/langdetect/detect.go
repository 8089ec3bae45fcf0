// Package langdetect decides which files hold Swift source. It uses go-enry
// for shebang and content sniffing, and for spotting vendored or generated
// files that should not be linted.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Swift is the go-enry name of the Swift language.
const Swift = "Swift"

// SwiftExtension is the canonical Swift source extension.
const SwiftExtension = ".swift"

// sniffCandidates are the languages an extension-less file is weighed
// against. Swift is only reported when the classifier is sure.
//
//nolint:gochecknoglobals // read-only candidate list
var sniffCandidates = []string{Swift, "Objective-C", "C", "C++", "Kotlin", "Shell", "Python", "Ruby"}

// IsSwift reports whether the file at path is a Swift source, judged by its
// extension first, then a shebang line such as "#!/usr/bin/env swift", then
// (for files with no extension at all) the go-enry content classifier.
func IsSwift(path string, content []byte) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == SwiftExtension {
		return true
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang == Swift
	}

	if ext != "" || len(content) == 0 {
		return false
	}

	lang, safe := enry.GetLanguageByClassifier(content, sniffCandidates)
	return safe && lang == Swift
}

// IsVendored reports whether relPath lies in a dependency tree such as
// Pods/ or Carthage/.
func IsVendored(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}

// IsGenerated reports whether the file looks machine generated.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, content)
}
