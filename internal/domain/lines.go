package domain

import "strings"

// SplitLines splits content after every newline, keeping the terminators.
// A trailing fragment without a newline becomes its own line.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// JoinLines concatenates lines back into file content.
func JoinLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
	}

	return []byte(b.String())
}
