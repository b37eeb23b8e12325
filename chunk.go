package emojimosaic

import "strings"

// DefaultChunkRows is how many rows go into one delivered block
const DefaultChunkRows = 5

// Chunk groups lines into consecutive batches of size lines; the last batch
// holds the remainder. A size < 1 selects DefaultChunkRows.
func Chunk(lines []string, size int) [][]string {
	if size < 1 {
		size = DefaultChunkRows
	}
	batches := make([][]string, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		batches = append(batches, lines[start:end])
	}
	return batches
}

// Blocks chunks the rows of g and joins each batch with newlines. Emission
// stops at the first batch that joins to an empty string.
func Blocks(g *Grid, size int) []string {
	return joinBatches(g.Lines(), size)
}

func joinBatches(lines []string, size int) []string {
	var blocks []string
	for _, batch := range Chunk(lines, size) {
		block := strings.Join(batch, "\n")
		if block == "" {
			break
		}
		blocks = append(blocks, block)
	}
	return blocks
}
