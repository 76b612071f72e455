package chunk_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/chunk"
	"github.com/t-okano/brieflet/pkg/model"
)

func TestSplitShortText(t *testing.T) {
	text := "A short note that fits in one chunk."
	chunks := chunk.Split(text, 1200, 120, "m1")

	gt.A(t, chunks).Length(1)
	gt.Equal(t, chunks[0].Text, text)
	gt.Equal(t, chunks[0].Index, 0)
	gt.Equal(t, chunks[0].MaterialID, model.MaterialID("m1"))
	gt.Equal(t, chunks[0].Start, 0)
	gt.Equal(t, chunks[0].End, len(text))
}

func TestSplitEmptyText(t *testing.T) {
	gt.A(t, chunk.Split("", 1200, 120, "m1")).Length(0)
	gt.A(t, chunk.Split("   \n\t  ", 1200, 120, "m1")).Length(0)
}

func TestSplitLongText(t *testing.T) {
	sentence := "The quarterly review covered revenue and hiring plans. "
	text := strings.TrimSpace(strings.Repeat(sentence, 100))

	chunks := chunk.Split(text, 1200, 120, "m1")

	gt.A(t, chunks).Longer(1)

	for i, c := range chunks {
		if len(c.Text) > 1200 {
			t.Errorf("chunk %d exceeds max length: %d", i, len(c.Text))
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
		gt.Equal(t, c.Index, i)
		gt.Equal(t, c.Text, text[c.Start:c.End])
	}

	// Starts strictly increase so progress is guaranteed
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start <= chunks[i-1].Start {
			t.Errorf("chunk %d start %d does not advance past %d",
				i, chunks[i].Start, chunks[i-1].Start)
		}
	}

	// Every non-final chunk should end at a sentence boundary
	for i := 0; i < len(chunks)-1; i++ {
		if !strings.HasSuffix(chunks[i].Text, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q",
				i, chunks[i].Text[len(chunks[i].Text)-10:])
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	sentence := "Deterministic input must produce identical output. "
	text := strings.Repeat(sentence, 80)

	first := chunk.Split(text, 1200, 120, "m1")
	second := chunk.Split(text, 1200, 120, "m1")

	gt.A(t, second).Length(len(first))
	for i := range first {
		gt.Equal(t, first[i], second[i])
	}
}

func TestSplitOverlap(t *testing.T) {
	sentence := "Consecutive chunks share a tail of the previous window. "
	text := strings.Repeat(sentence, 100)

	chunks := chunk.Split(text, 1200, 120, "m1")
	gt.A(t, chunks).Longer(1)

	// The next chunk starts before the previous one ends, up to the
	// configured overlap
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start >= chunks[i-1].End {
			t.Errorf("chunk %d does not overlap its predecessor", i)
		}
	}
}

func TestSplitParagraphBoundary(t *testing.T) {
	para := strings.Repeat("word ", 160) // 800 chars
	text := para + "\n\n" + para

	chunks := chunk.Split(text, 1200, 120, "m1")
	gt.A(t, chunks).Longer(1)

	// First chunk should stop at the paragraph break, not mid-paragraph
	gt.V(t, chunks[0].End <= len(para)).Equal(true)
}

func TestSplitThreeWindows(t *testing.T) {
	sentence := strings.Repeat("x", 58) + ". "
	text := strings.Repeat(sentence, 50) // 3000 bytes

	chunks := chunk.Split(text, 1200, 120, "m1")
	gt.A(t, chunks).Length(3)
}

func TestSplitTailTermination(t *testing.T) {
	// The final window must consume the rest of the text in one chunk
	// instead of re-walking the tail
	text := "A short note that fits well inside a single window."
	chunks := chunk.Split(text, 1200, 120, "m1")
	gt.A(t, chunks).Length(1)

	sentence := "Each of these sentences is part of a longer meeting note. "
	long := strings.TrimSpace(strings.Repeat(sentence, 60))
	chunks = chunk.Split(long, 1200, 120, "m1")
	seen := map[int]bool{}
	for _, c := range chunks {
		if seen[c.Start] {
			t.Errorf("start %d emitted twice", c.Start)
		}
		seen[c.Start] = true
	}
}

func TestSplitMultibyteRuneBoundaries(t *testing.T) {
	// No ASCII sentence boundaries, so every cut is a hard cut; none may
	// land inside a multi-byte rune
	text := strings.Repeat("会議memo。", 400)

	chunks := chunk.Split(text, 1200, 120, "m1")
	gt.A(t, chunks).Longer(1)
	for i, c := range chunks {
		if !utf8.ValidString(c.Text) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c.Text[:12])
		}
		if len(c.Text) > 1200 {
			t.Errorf("chunk %d exceeds max length: %d", i, len(c.Text))
		}
	}
}

func TestSplitDegenerateParams(t *testing.T) {
	text := strings.Repeat("Some sentence here. ", 200)

	// Invalid params fall back to defaults instead of looping forever
	chunks := chunk.Split(text, 0, -1, "m1")
	gt.A(t, chunks).Longer(0)

	chunks = chunk.Split(text, 100, 100, "m1")
	gt.A(t, chunks).Longer(0)
}
