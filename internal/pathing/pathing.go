package pathing

import (
	"path/filepath"
	"strings"
)

// Stdin names standard input wherever an input file is expected.
const Stdin = "-"

// NormalizeInputPath trims an input name taken from a flag or a path file.
func NormalizeInputPath(path string) string {
	return strings.TrimSpace(path)
}

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics.
func IsAbsoluteLike(path string) bool {
	path = NormalizeInputPath(path)
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "/") {
		return true
	}
	if len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}

	return false
}

// ResolveInput resolves an input listed in a path file against the
// directory of that file. Stdin and absolute-like names are kept as is.
func ResolveInput(input string, pathFile string) string {
	input = NormalizeInputPath(input)
	if input == "" || input == Stdin || IsAbsoluteLike(input) {
		return input
	}

	return filepath.Join(filepath.Dir(pathFile), input)
}

// ResolveInputs applies ResolveInput to every input, dropping blank names.
func ResolveInputs(inputs []string, pathFile string) []string {
	resolved := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if r := ResolveInput(input, pathFile); r != "" {
			resolved = append(resolved, r)
		}
	}
	return resolved
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
