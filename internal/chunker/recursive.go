package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"sitechat/internal/domain"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// defaultSeparators are tried in order: paragraph break, line break,
// sentence boundary, word boundary, then character-level fallback.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveSplitter splits text into overlapping chunks by recursively
// trying a fixed separator list, preferring the earliest separator
// that yields pieces within the size budget. Splitting is
// length-based, not semantic.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewRecursiveSplitter creates a splitter with the given chunk size
// and overlap. Non-positive values fall back to the defaults; the
// overlap must stay below the chunk size.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) (*RecursiveSplitter, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap <= 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", chunkOverlap, chunkSize)
	}
	return &RecursiveSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}, nil
}

// Chunk splits the page text and attaches positional metadata. An
// empty cleaned text yields an empty list, not an error.
func (s *RecursiveSplitter) Chunk(page domain.PageContent) ([]domain.Chunk, error) {
	text := preClean(page.Text)
	if text == "" {
		return nil, nil
	}

	pieces := s.split(text, s.separators)
	texts := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			texts = append(texts, p)
		}
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = domain.Chunk{
			Text:        t,
			SourceURL:   page.URL,
			PageTitle:   page.Title,
			Index:       i,
			TotalChunks: len(texts),
		}
	}
	return chunks, nil
}

// split picks the first separator present in the text, splits on it,
// recurses into oversized pieces with the remaining separators, and
// merges the rest back toward chunkSize.
func (s *RecursiveSplitter) split(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var splits []string
	if separator == "" {
		splits = strings.Split(text, "")
	} else {
		splits = strings.Split(text, separator)
	}

	var final []string
	var good []string
	for _, piece := range splits {
		if len(piece) < s.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good, separator)...)
			good = nil
		}
		if len(remaining) == 0 {
			// Atomic oversize token, kept as-is.
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, remaining)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, separator)...)
	}
	return final
}

// merge concatenates adjacent pieces up to chunkSize, carrying the
// last chunkOverlap characters of each chunk into the next.
func (s *RecursiveSplitter) merge(splits []string, separator string) []string {
	sepLen := len(separator)
	var docs []string
	var current []string
	total := 0
	for _, piece := range splits {
		pieceLen := len(piece)
		extra := 0
		if len(current) > 0 {
			extra = sepLen
		}
		if total+pieceLen+extra > s.chunkSize && len(current) > 0 {
			if doc := joinPieces(current, separator); doc != "" {
				docs = append(docs, doc)
			}
			// Slide the window forward until the retained tail fits
			// the overlap budget together with the next piece.
			for total > s.chunkOverlap || (total+pieceLen+extra > s.chunkSize && total > 0) {
				drop := len(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
				extra = 0
				if len(current) > 0 {
					extra = sepLen
				}
			}
		}
		current = append(current, piece)
		total += pieceLen
		if len(current) > 1 {
			total += sepLen
		}
	}
	if doc := joinPieces(current, separator); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func joinPieces(pieces []string, separator string) string {
	return strings.TrimSpace(strings.Join(pieces, separator))
}

var (
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n(\s*\n)+`)
	terminalRe   = regexp.MustCompile(`[.!?]$`)
)

// preClean normalises text before splitting: whitespace runs collapse,
// repeated blank lines reduce to one, and short fragments are dropped
// unless they end in terminal punctuation.
func preClean(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= 10 || terminalRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
