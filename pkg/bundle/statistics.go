package bundle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Statistics is a parsed bundler stats document. The shape is recursive
// and loosely specified, so it stays a generic JSON object and the walk
// below does the interpretation.
type Statistics map[string]any

// Well-known keys of the stats document.
const (
	keyModules = "modules"
	keyChunks  = "chunks"
	keyName    = "name"
	keySource  = "source"
)

// Markers in bundled module names that mean the module lives inside the
// frontend npm package or the generated resources folder rather than the
// project source tree; lookups for such modules drop the "./" from the
// normalized file name.
const (
	npmPackageMarker     = "@loom/app-frontend/"
	resourceFolderMarker = "app-frontend"
)

var moduleQueryPattern = regexp.MustCompile(`\?.+$`)

// ParseStatistics decodes raw stats JSON.
func ParseStatistics(data []byte) (Statistics, error) {
	var stats Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("bundle: parse statistics: %w", err)
	}
	return stats, nil
}

// SourceFromStatistics finds the original source text of the named file
// inside a stats document. The walk is depth first, modules before
// chunks at every level, and the first matching leaf wins. Absence is an
// expected outcome, reported by the second return, not an error.
func SourceFromStatistics(fileName string, stats Statistics) (string, bool) {
	// Bundlers key modules by their emitted name, which always carries
	// the .js extension.
	if !strings.HasSuffix(fileName, ".js") {
		fileName += ".js"
	}
	return sourceFromObject(stats, fileName, alternativeName(fileName))
}

// sourceFromObject recurses into an object's modules, then its chunks,
// and only then considers the object itself as a leaf module.
func sourceFromObject(obj map[string]any, fileName, alternative string) (string, bool) {
	if modules, ok := jsonArray(obj, keyModules); ok {
		if source, ok := sourceFromArray(modules, fileName, alternative); ok {
			return source, true
		}
	}
	if chunks, ok := jsonArray(obj, keyChunks); ok {
		if source, ok := sourceFromArray(chunks, fileName, alternative); ok {
			return source, true
		}
	}
	return leafSource(obj, fileName, alternative)
}

func sourceFromArray(arr []any, fileName, alternative string) (string, bool) {
	for _, entry := range arr {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if source, ok := sourceFromObject(obj, fileName, alternative); ok {
			return source, true
		}
	}
	return "", false
}

// leafSource matches one module record. A leaf needs non-empty name and
// source strings; the module name is compared with its bundler query
// suffix (such as ?babel-target=es6) stripped.
func leafSource(obj map[string]any, fileName, alternative string) (string, bool) {
	name, ok := jsonString(obj, keyName)
	if !ok {
		return "", false
	}
	source, ok := jsonString(obj, keySource)
	if !ok {
		return "", false
	}

	// Modules inside the frontend package or the resources folder carry
	// a real path where the project-relative name has "./"; drop it from
	// the candidate so they still match.
	if strings.Contains(name, npmPackageMarker) || strings.Contains(name, resourceFolderMarker) {
		alternative = strings.Replace(alternative, "./", "", 1)
	}

	name = moduleQueryPattern.ReplaceAllString(name, "")
	if strings.HasSuffix(name, fileName) || strings.HasSuffix(name, alternative) {
		return source, true
	}
	return "", false
}

// alternativeName rewrites the requested file name the way the bundler
// rewrites entry-point paths: a leading "./frontend/" collapses to "./"
// and the "frontend://" protocol becomes ".".
func alternativeName(fileName string) string {
	if strings.HasPrefix(fileName, "./frontend/") {
		return "./" + strings.TrimPrefix(fileName, "./frontend/")
	}
	if strings.HasPrefix(fileName, "frontend://") {
		return "." + strings.TrimPrefix(fileName, "frontend://")
	}
	return fileName
}

// jsonString fetches a non-empty string field.
func jsonString(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// jsonArray fetches an array field.
func jsonArray(obj map[string]any, key string) ([]any, bool) {
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}
