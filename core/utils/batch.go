package utils

// SaveBatchSize bounds the rows written by one save or insert statement.
const SaveBatchSize = 100

// deleteRowsPerChunk is the divisor used to derive the delete chunk count.
const deleteRowsPerChunk = 500

// Span is a half-open [Start, End) window into a slice.
type Span struct {
	Start int
	End   int
}

// Chunks splits n items into consecutive spans of at most size items.
// 250 items with size 100 yield spans of 100, 100 and 50.
func Chunks(n, size int) []Span {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	spans := make([]Span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		spans = append(spans, Span{Start: start, End: min(start+size, n)})
	}
	return spans
}

// DeleteChunkCount returns ceil(n/500), at least 1.
func DeleteChunkCount(n int) int {
	return max((n+deleteRowsPerChunk-1)/deleteRowsPerChunk, 1)
}

// DeleteChunks splits n rows into DeleteChunkCount(n) near-equal spans.
func DeleteChunks(n int) []Span {
	if n <= 0 {
		return nil
	}
	count := DeleteChunkCount(n)
	return Chunks(n, (n+count-1)/count)
}
