package knowledge

// Record is one question/answer pair. Index is its position in ingestion
// order and is the only key used to correlate a search hit back to it.
type Record struct {
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SkippedSpan describes a block the tolerant parser dropped.
type SkippedSpan struct {
	Block  int    // Position of the block in the input, counting every non-empty block
	Text   string // Raw block text
	Reason string
}

// ParseResult holds the records accepted by Parse and the blocks it skipped.
type ParseResult struct {
	Records []Record
	Skipped []SkippedSpan
}

// Corpus is the ordered, read-only collection of records loaded at startup.
type Corpus struct {
	path    string
	records []Record
	skipped []SkippedSpan
}

// NewCorpus wraps already parsed records. Records are re-indexed 0..N-1 in
// the order given.
func NewCorpus(records []Record) *Corpus {
	rs := make([]Record, len(records))
	for i, r := range records {
		r.Index = i
		rs[i] = r
	}
	return &Corpus{records: rs}
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Record returns the record at index i.
func (c *Corpus) Record(i int) Record {
	return c.records[i]
}

// Records returns a copy of all records in ingestion order.
func (c *Corpus) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Questions returns the question texts in ingestion order (same order as
// the records, so position i is record i).
func (c *Corpus) Questions() []string {
	qs := make([]string, len(c.records))
	for i, r := range c.records {
		qs[i] = r.Question
	}
	return qs
}

// Skipped returns the blocks dropped while parsing the source file.
func (c *Corpus) Skipped() []SkippedSpan {
	return c.skipped
}

// Path returns the file the corpus was loaded from, if any.
func (c *Corpus) Path() string {
	return c.path
}
