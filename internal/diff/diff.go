// Package diff renders compact line diffs for tool results.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one line of a computed diff.
type Line struct {
	Type    string
	Text    string
	OldLine int
	NewLine int
}

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

// Lines computes a line-level diff between two texts.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	oldLine := 1
	newLine := 1
	for _, d := range diffs {
		chunk := strings.Split(d.Text, "\n")
		if len(chunk) > 0 && chunk[len(chunk)-1] == "" {
			chunk = chunk[:len(chunk)-1]
		}
		for _, text := range chunk {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{Type: LineContext, Text: text, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{Type: LineRemoved, Text: text, OldLine: oldLine})
				oldLine++
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{Type: LineAdded, Text: text, NewLine: newLine})
				newLine++
			}
		}
	}
	return lines
}

// DefaultSnippetLines caps the size of rendered snippets so a large edit
// does not flood the transcript.
const DefaultSnippetLines = 40

// Snippet renders the changed lines of a diff in a +/- format, with line
// numbers from the new text for additions and the old text for removals.
// Context lines are omitted. Output is truncated after maxLines changed
// lines; maxLines <= 0 uses DefaultSnippetLines.
func Snippet(before, after string, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultSnippetLines
	}

	var b strings.Builder
	shown := 0
	truncated := false
	for _, line := range Lines(before, after) {
		if line.Type == LineContext {
			continue
		}
		if shown >= maxLines {
			truncated = true
			break
		}
		switch line.Type {
		case LineRemoved:
			fmt.Fprintf(&b, "- %d: %s\n", line.OldLine, line.Text)
		case LineAdded:
			fmt.Fprintf(&b, "+ %d: %s\n", line.NewLine, line.Text)
		}
		shown++
	}
	if truncated {
		b.WriteString("... (diff truncated)\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
