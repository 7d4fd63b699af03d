package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestReadTool_Name(t *testing.T) {
	tool := &ReadTool{}
	assert.Equal(t, "Read", tool.Name())
}

func TestReadTool_Execute_NotFound(t *testing.T) {
	tool := &ReadTool{}

	result, err := tool.Execute(ctxWithFiles(), ReadInput{FilePath: "/missing.txt"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "'/missing.txt' not found")
}

func TestReadTool_Execute_EmptyFile(t *testing.T) {
	tool := &ReadTool{}

	result, err := tool.Execute(ctxWithFiles("/empty.txt", ""), ReadInput{FilePath: "/empty.txt"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, extractText(result), "exists but has empty contents")
}

func TestReadTool_Execute_NumberedLines(t *testing.T) {
	tool := &ReadTool{}
	ctx := ctxWithFiles("/a.txt", "l1\nl2\nl3")

	result, err := tool.Execute(ctx, ReadInput{FilePath: "/a.txt", Limit: intPtr(2)})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "     1\tl1\n     2\tl2", extractText(result))
}

func TestReadTool_Execute_OffsetWindow(t *testing.T) {
	tool := &ReadTool{}
	ctx := ctxWithFiles("/a.txt", "l1\nl2\nl3\nl4")

	result, err := tool.Execute(ctx, ReadInput{
		FilePath: "/a.txt",
		Offset:   intPtr(1),
		Limit:    intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "     2\tl2\n     3\tl3", extractText(result))
}

func TestReadTool_Execute_OffsetBeyondEOF(t *testing.T) {
	tool := &ReadTool{}
	ctx := ctxWithFiles("/a.txt", "l1\nl2\nl3")

	result, err := tool.Execute(ctx, ReadInput{FilePath: "/a.txt", Offset: intPtr(5)})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "exceeds file length")
}

func TestReadTool_Execute_LimitPastEOF(t *testing.T) {
	tool := &ReadTool{}
	ctx := ctxWithFiles("/a.txt", "l1\nl2\nl3")

	result, err := tool.Execute(ctx, ReadInput{
		FilePath: "/a.txt",
		Offset:   intPtr(2),
		Limit:    intPtr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "     3\tl3", extractText(result))
}

func TestReadTool_Execute_LongLineTruncated(t *testing.T) {
	tool := &ReadTool{}
	long := strings.Repeat("x", 5000)
	ctx := ctxWithFiles("/a.txt", long)

	result, err := tool.Execute(ctx, ReadInput{FilePath: "/a.txt"})
	require.NoError(t, err)

	text := extractText(result)
	// "     1\t" prefix plus 2000 content characters.
	assert.Len(t, text, 7+2000)
}

func TestReadTool_Execute_MissingPath(t *testing.T) {
	tool := &ReadTool{}

	result, err := tool.Execute(ctxWithFiles(), ReadInput{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
