package colexpr

import "fmt"

// ChunkedArray is an ordered sequence of Arrays of the same logical type,
// representing one logically concatenated column. A single-Array column is
// the degenerate case of one chunk.
type ChunkedArray struct {
	dtype  LogicalType
	chunks []Array
	length int
}

// NewChunkedArray builds a ChunkedArray from one or more chunks, all of
// which must share dtype. Zero chunks is valid and represents an empty
// column.
func NewChunkedArray(dtype LogicalType, chunks ...Array) *ChunkedArray {
	length := 0
	for _, c := range chunks {
		if c.Type() != dtype {
			panic(fmt.Sprintf("colexpr: chunk type %s does not match chunked array type %s", c.Type(), dtype))
		}
		length += c.Len()
	}
	return &ChunkedArray{dtype: dtype, chunks: chunks, length: length}
}

// Type returns the logical type shared by every chunk.
func (c *ChunkedArray) Type() LogicalType { return c.dtype }

// Len returns the total number of logical rows across all chunks.
func (c *ChunkedArray) Len() int { return c.length }

// NumChunks returns the number of physical chunks.
func (c *ChunkedArray) NumChunks() int { return len(c.chunks) }

// Chunk returns the i-th physical chunk.
func (c *ChunkedArray) Chunk(i int) Array { return c.chunks[i] }

// locate resolves a logical row index to its owning chunk and the offset
// of that row within the chunk. It is a one-off lookup; sequential
// row-by-row scans should use a chunkCursor instead.
func (c *ChunkedArray) locate(index int) (Array, int) {
	for _, chunk := range c.chunks {
		n := chunk.Len()
		if index < n {
			return chunk, index
		}
		index -= n
	}
	panic("colexpr: row index out of range for chunked array")
}

// IsNull reports whether the logical row at index is null.
func (c *ChunkedArray) IsNull(index int) bool {
	chunk, offset := c.locate(index)
	return chunk.IsNull(offset)
}

// chunkCursor advances row by row across a ChunkedArray's chunk
// boundaries, tracking a chunk index and an offset within that chunk.
// flatten uses it to copy a column of any chunking into one contiguous
// Array, which is how the evaluator lines up differently-chunked columns.
type chunkCursor struct {
	ca          *ChunkedArray
	chunkIdx    int
	offset      int
	chunkRemain int // rows left (including current) in the current chunk
}

func newChunkCursor(ca *ChunkedArray) *chunkCursor {
	cur := &chunkCursor{ca: ca}
	cur.skipEmptyChunks()
	return cur
}

func (cur *chunkCursor) skipEmptyChunks() {
	for cur.chunkIdx < len(cur.ca.chunks) && cur.ca.chunks[cur.chunkIdx].Len() == 0 {
		cur.chunkIdx++
	}
	if cur.chunkIdx < len(cur.ca.chunks) {
		cur.chunkRemain = cur.ca.chunks[cur.chunkIdx].Len()
	}
}

// current returns the chunk and offset the cursor currently points at.
func (cur *chunkCursor) current() (Array, int) {
	return cur.ca.chunks[cur.chunkIdx], cur.offset
}

// advance moves the cursor forward by one logical row.
func (cur *chunkCursor) advance() {
	cur.offset++
	cur.chunkRemain--
	if cur.chunkRemain == 0 {
		cur.chunkIdx++
		cur.offset = 0
		cur.skipEmptyChunks()
	}
}
