package learning

import "strings"

// Segment is a run of explanation text. Bold marks a **highlighted** run.
type Segment struct {
	Text string
	Bold bool
}

// Segments splits text on ** pairs. An unmatched trailing ** is kept as
// literal text.
func Segments(text string) []Segment {
	var out []Segment
	for text != "" {
		open := strings.Index(text, "**")
		if open < 0 {
			out = append(out, Segment{Text: text})
			break
		}
		end := strings.Index(text[open+2:], "**")
		if end < 0 {
			out = append(out, Segment{Text: text})
			break
		}
		if open > 0 {
			out = append(out, Segment{Text: text[:open]})
		}
		if bold := text[open+2 : open+2+end]; bold != "" {
			out = append(out, Segment{Text: bold, Bold: true})
		}
		text = text[open+2+end+2:]
	}
	return out
}
