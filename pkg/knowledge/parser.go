package knowledge

import (
	"regexp"
	"strings"
)

const (
	QuestionMarker = "Question:"
	AnswerMarker   = "Answer:"
)

// blank lines may carry stray spaces or tabs
var blockSeparator = regexp.MustCompile(`\n[ \t]*\n\s*`)

// Parse splits text into records. It never fails: blocks without both
// markers, or with the answer marker ahead of the question marker, are
// dropped and listed in ParseResult.Skipped.
//
// There is no escaping, so question or answer text cannot contain a blank
// line or a literal marker.
func Parse(text string) ParseResult {
	var res ParseResult

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return res
	}

	for i, block := range blockSeparator.Split(text, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		q := strings.Index(block, QuestionMarker)
		a := strings.Index(block, AnswerMarker)

		reason := ""
		switch {
		case q < 0 && a < 0:
			reason = "missing question and answer markers"
		case q < 0:
			reason = "missing question marker"
		case a < 0:
			reason = "missing answer marker"
		case a < q:
			reason = "answer marker before question marker"
		}
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedSpan{Block: i, Text: block, Reason: reason})
			continue
		}

		res.Records = append(res.Records, Record{
			Index:    len(res.Records),
			Question: strings.TrimSpace(block[q+len(QuestionMarker) : a]),
			Answer:   strings.TrimSpace(block[a+len(AnswerMarker):]),
		})
	}

	return res
}

// Format renders records in the knowledge base file format, one blank line
// between records.
func Format(records []Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(QuestionMarker + " " + r.Question + "\n")
		b.WriteString(AnswerMarker + " " + r.Answer + "\n")
	}
	return b.String()
}
