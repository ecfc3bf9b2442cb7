package sendbuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_PutJoinsWithNewlines(t *testing.T) {
	var b buffer

	assert.Equal(t, "", b.Messages())

	b.Put("a")
	assert.Equal(t, "a", b.Messages())

	b.Put("b")
	assert.Equal(t, "a\nb", b.Messages())
}

func TestBuffer_Clear(t *testing.T) {
	var b buffer
	b.Put("a")
	b.Put("b")

	b.Clear()
	assert.Equal(t, "", b.Messages())

	// Appending after a clear starts a fresh batch
	b.Put("c")
	assert.Equal(t, "c", b.Messages())
}

func TestWriterBuffer_FlushWritesBatchAndClears(t *testing.T) {
	var out bytes.Buffer
	b := NewWriterBuffer(&out)

	b.Put("line one")
	b.Put("line two")
	b.Flush()

	assert.Equal(t, "line one\nline two\n", out.String())
	assert.Equal(t, "", b.Messages())
}

func TestWriterBuffer_FlushAlwaysClears(t *testing.T) {
	var out bytes.Buffer
	b := NewWriterBuffer(&out)

	b.Put("a")
	b.Flush()
	b.Flush() // empty flush writes a bare newline, like the batch it is

	assert.Equal(t, "a\n\n", out.String())
	assert.Equal(t, "", b.Messages())
}
