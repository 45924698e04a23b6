package chunker

import (
	"strings"

	"finsight-rag/internal/models"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// Chunker splits document summaries into overlapping character chunks.
// Insights are never split; each one becomes its own chunk verbatim.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Split is deterministic for a given configuration. A document with no
// summary and no insights yields no chunks.
func (c *Chunker) Split(doc models.Document) []models.Chunk {
	var chunks []models.Chunk
	for _, piece := range c.splitText(doc.FullText) {
		chunks = append(chunks, models.Chunk{
			Text:        piece,
			SourceTitle: doc.Title,
			Type:        models.ChunkContent,
		})
	}
	for _, insight := range doc.Insights {
		if strings.TrimSpace(insight) == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Text:        insight,
			SourceTitle: doc.Title,
			Type:        models.ChunkInsight,
		})
	}
	return chunks
}

// splitText chunks content at the target size with overlap, preferring
// to break on whitespace or a sentence end found within the last 10%
// of the chunk.
func (c *Chunker) splitText(content string) []string {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return nil
	}
	if len(content) <= c.chunkSize {
		return []string{content}
	}

	var chunks []string
	contentLen := len(content)
	start := 0
	for start < contentLen {
		end := min(start+c.chunkSize, contentLen)

		if end < contentLen {
			lookBack := min(c.chunkSize/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(content[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == contentLen {
			break
		}
		next := end - c.chunkOverlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
