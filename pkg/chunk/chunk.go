package chunk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/t-okano/brieflet/pkg/model"
)

const (
	// DefaultMaxLen and DefaultOverlap are the pipeline-wide chunking
	// parameters. Overridable per call for tuning.
	DefaultMaxLen  = 1200
	DefaultOverlap = 120

	// A sentence cut is only taken in the last 40% of the window so
	// chunks do not degenerate into short fragments.
	minCutRatio = 0.6
)

// Split walks text in a sliding window of maxLen bytes, cutting at the
// nearest sentence boundary in the tail of the window when one exists
// and at the nearest rune boundary otherwise. Consecutive chunks overlap
// by up to overlap bytes. Offsets index into the original text so a
// chunk can be re-sliced from its material later. The result is
// deterministic, never contains an empty chunk, never emits the same
// start twice, and never cuts inside a multi-byte rune.
func Split(text string, maxLen, overlap int, materialID model.MaterialID) []model.Chunk {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if overlap < 0 || overlap >= maxLen {
		overlap = DefaultOverlap
		if overlap >= maxLen {
			overlap = maxLen / 10
		}
	}

	var chunks []model.Chunk
	n := len(text)
	i := 0

	for i < n {
		cut := n
		if end := i + maxLen; end < n {
			cut = findCut(text, i, end)
			if cut < i+int(float64(maxLen)*minCutRatio) {
				cut = runeStart(text, end)
			}
		}

		start, stop := trimSpan(text, i, cut)
		if start < stop {
			chunks = append(chunks, model.Chunk{
				MaterialID: materialID,
				Index:      len(chunks),
				Start:      start,
				End:        stop,
				Text:       text[start:stop],
			})
		}

		// The last window consumed the rest of the text; stepping back
		// by the overlap here would re-walk the tail byte by byte
		if cut >= n {
			break
		}

		// Step back by the overlap but always make forward progress so
		// the same start is never emitted twice
		next := runeStart(text, cut-overlap)
		if next <= i {
			next = i + 1
			for next < n && !utf8.RuneStart(text[next]) {
				next++
			}
		}
		i = next
	}

	return chunks
}

// findCut searches backward from end for a paragraph break or a sentence
// terminator followed by a space. Returns -1 when none exists in [from, end).
func findCut(text string, from, end int) int {
	window := text[from:end]

	if p := strings.LastIndex(window, "\n\n"); p >= 0 {
		return from + p
	}

	best := -1
	for _, term := range []string{". ", "! ", "? "} {
		if p := strings.LastIndex(window, term); p >= 0 {
			// Cut after the terminator character
			if from+p+1 > best {
				best = from + p + 1
			}
		}
	}
	return best
}

// runeStart backs p off to the nearest rune boundary at or before p
func runeStart(text string, p int) int {
	for p > 0 && p < len(text) && !utf8.RuneStart(text[p]) {
		p--
	}
	return p
}

// trimSpan shrinks [start, end) so it excludes leading and trailing
// whitespace, preserving offsets into the original text.
func trimSpan(text string, start, end int) (int, int) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return start, end
}
