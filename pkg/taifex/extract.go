package taifex

// Strategy reads the main contract for symbol from report markup, returning
// nil when the markup is not in a shape it understands.
type Strategy func(markup []byte, symbol string) *MainContract

// Extractor runs strategies in order until one yields a row.
type Extractor struct {
	Strategies []Strategy
}

// NewExtractor builds an extractor over strategies.
func NewExtractor(strategies ...Strategy) *Extractor {
	return &Extractor{Strategies: strategies}
}

// DefaultExtractor tries the report tables first and falls back to text lines.
func DefaultExtractor() *Extractor {
	return NewExtractor(ExtractFromTables, ExtractFromText)
}

// Extract returns the first non-nil strategy result.
func (e *Extractor) Extract(markup []byte, symbol string) *MainContract {
	if e == nil {
		return nil
	}
	for _, strategy := range e.Strategies {
		if strategy == nil {
			continue
		}
		if row := strategy(markup, symbol); row != nil {
			return row
		}
	}
	return nil
}
