package stacktrace

import "strings"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a raw debug.Stack() trace, innermost first.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		_, rest, ok := strings.Cut(line, "/internal/")
		if !ok || !strings.Contains(rest, ".go:") {
			continue
		}

		// drop the " +0x1f" program counter offset
		if sp := strings.IndexByte(rest, ' '); sp != -1 {
			rest = rest[:sp]
		}

		paths = append(paths, "internal/"+rest)
	}

	return paths
}
