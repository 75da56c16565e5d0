package sequence

// Summary is everything one transcript yields.
type Summary struct {
	Digits    []int
	WordCount int
	Analysis
}

// Interpret runs Tokenize then Analyze.
func Interpret(transcript string) (summary Summary, err error) {
	digits, err := Tokenize(transcript)
	if err != nil {
		return
	}
	analysis, err := Analyze(digits)
	if err != nil {
		return
	}
	summary = Summary{
		Digits:    digits,
		WordCount: len(digits),
		Analysis:  analysis,
	}
	return
}
