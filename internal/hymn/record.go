package hymn

// Record is a hymn as supplied by the corpus provider. Number is the
// hymnal index and may be empty for hymns outside the hymnal. Stanzas
// holds the lyric lines of each stanza in singing order.
type Record struct {
	Number  string     `json:"number,omitempty"`
	Title   string     `json:"title"`
	Stanzas [][]string `json:"stanzas,omitempty"`
}
