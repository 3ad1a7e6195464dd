package partition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPartitionsSmallInputReturnsNil(t *testing.T) {
	assert.Nil(t, FindPartitions([]byte("node\n"), 1000))
}

func TestFindPartitionsZeroTargetSizeReturnsNil(t *testing.T) {
	assert.Nil(t, FindPartitions([]byte(strings.Repeat("node\n", 100)), 0))
}

func TestFindPartitionsSplitsAtTopLevelNewlines(t *testing.T) {
	data := []byte(strings.Repeat("node\n", 20))
	offsets := FindPartitions(data, 10)
	require.NotEmpty(t, offsets)
	for _, off := range offsets {
		assert.LessOrEqual(t, off, len(data))
		// every offset must land immediately after a newline.
		assert.Equal(t, byte('\n'), data[off-1])
	}
}

func TestFindPartitionsNeverSplitsInsideChildrenBlock(t *testing.T) {
	data := []byte(strings.Repeat("parent {\nchild\n}\n", 20))
	offsets := FindPartitions(data, 10)
	for _, off := range offsets {
		depth := 0
		for i := 0; i < off; i++ {
			switch data[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		assert.Equal(t, 0, depth, "offset %d falls inside a children block", off)
	}
}

func TestFindPartitionsNeverSplitsInsideString(t *testing.T) {
	data := []byte(strings.Repeat("node \"line\\ntext\"\n", 20))
	offsets := FindPartitions(data, 10)
	for _, off := range offsets {
		inString := false
		for i := 0; i < off; i++ {
			if data[i] == '\\' {
				i++
				continue
			}
			if data[i] == '"' {
				inString = !inString
			}
		}
		assert.False(t, inString, "offset %d falls inside a quoted string", off)
	}
}

func TestFindPartitionsNeverSplitsInsideLineComment(t *testing.T) {
	data := []byte(strings.Repeat("node // trailing comment with a newline marker\n", 20))
	offsets := FindPartitions(data, 10)
	assert.NotEmpty(t, offsets)
	for _, off := range offsets {
		assert.LessOrEqual(t, off, len(data))
	}
}

func TestFindPartitionsSingleNodeNoSiblingsReturnsNil(t *testing.T) {
	data := []byte("node " + strings.Repeat("\"a\" ", 500))
	offsets := FindPartitions(data, 10)
	assert.Empty(t, offsets)
}

func TestFindPartitionsRawStringWithHashesSkipped(t *testing.T) {
	data := []byte(strings.Repeat(`node #"raw } { text"#`+"\n", 20))
	offsets := FindPartitions(data, 10)
	for _, off := range offsets {
		assert.Equal(t, byte('\n'), data[off-1])
	}
}
