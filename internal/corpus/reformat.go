package corpus

import "strings"

const sentenceDelims = "；!?！？。"

// SplitLongLines breaks lyric lines of maxLen runes or more so they
// fit a slide: first at ；, then at the 。！？ class of sentence
// punctuation, then at commas for segments still too long. Shorter
// lines pass through.
func SplitLongLines(lines []string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = 30
	}
	var out []string
	for _, line := range lines {
		if len([]rune(line)) < maxLen {
			out = append(out, line)
			continue
		}

		if parts := splitKeepDelim(line, '；'); len(parts) >= 2 {
			out = append(out, parts...)
			continue
		}

		segments := splitAfterAny(line, sentenceDelims)
		if len(segments) <= 1 {
			out = append(out, line)
			continue
		}
		for _, seg := range segments {
			if len([]rune(seg)) >= maxLen {
				if parts := splitKeepDelim(seg, '，'); len(parts) >= 2 {
					out = append(out, parts...)
					continue
				}
			}
			out = append(out, seg)
		}
	}
	return out
}

// splitKeepDelim splits on delim, keeping the delimiter attached to
// every part but the last. Fewer than two parts means no useful split.
func splitKeepDelim(s string, delim rune) []string {
	var parts []string
	for _, p := range strings.Split(s, string(delim)) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	for i := 0; i < len(parts)-1; i++ {
		parts[i] += string(delim)
	}
	return parts
}

// splitAfterAny cuts after each occurrence of any delimiter rune.
func splitAfterAny(s, delims string) []string {
	var segments []string
	var buf strings.Builder
	for _, r := range s {
		buf.WriteRune(r)
		if strings.ContainsRune(delims, r) {
			if seg := strings.TrimSpace(buf.String()); seg != "" {
				segments = append(segments, seg)
			}
			buf.Reset()
		}
	}
	if seg := strings.TrimSpace(buf.String()); seg != "" {
		segments = append(segments, seg)
	}
	return segments
}

// ReformatStanzas splits stanzas longer than maxLines into chunks of
// targetLines. A short remainder of at most maxLines-targetLines is
// absorbed into the final chunk, so a trailing 阿們 line does not end
// up alone on a slide.
func ReformatStanzas(stanzas [][]string, maxLines, targetLines int) [][]string {
	if maxLines <= 0 {
		maxLines = 5
	}
	if targetLines <= 0 || targetLines > maxLines {
		targetLines = 4
	}

	var out [][]string
	for _, stanza := range stanzas {
		lines := SplitLongLines(stanza, 30)
		if len(lines) <= maxLines {
			out = append(out, lines)
			continue
		}
		for i := 0; i < len(lines); i += targetLines {
			end := i + targetLines
			if end > len(lines) {
				end = len(lines)
			}
			remaining := len(lines) - end
			if 0 < remaining && remaining <= maxLines-targetLines {
				out = append(out, lines[i:])
				break
			}
			out = append(out, lines[i:end])
		}
	}
	return out
}
