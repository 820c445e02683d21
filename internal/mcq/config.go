package mcq

import "fmt"

// Config holds the line-wrapping thresholds of the scanner. The defaults
// were tuned against a single source document.
type Config struct {
	// QuestionMinLen is the stem length below which the next line is
	// treated as a continuation of the stem.
	QuestionMinLen int `yaml:"question_min_len"`

	// OptionMinLen is the option length below which the next line is
	// treated as a continuation, unless it is itself an option.
	OptionMinLen int `yaml:"option_min_len"`

	// OptionScanLimit bounds how many lines past the question line the
	// option scan may run.
	OptionScanLimit int `yaml:"option_scan_limit"`

	// AnswerWindow is the number of lines after the options searched for
	// an answer indicator.
	AnswerWindow int `yaml:"answer_window"`
}

// DefaultConfig returns the thresholds the extractor was tuned with.
func DefaultConfig() Config {
	return Config{
		QuestionMinLen:  10,
		OptionMinLen:    5,
		OptionScanLimit: 15,
		AnswerWindow:    5,
	}
}

// Validate rejects thresholds that would stall or disable the scan.
func (c Config) Validate() error {
	if c.QuestionMinLen < 0 {
		return fmt.Errorf("question_min_len must be >= 0, got %d", c.QuestionMinLen)
	}
	if c.OptionMinLen < 0 {
		return fmt.Errorf("option_min_len must be >= 0, got %d", c.OptionMinLen)
	}
	if c.OptionScanLimit < 4 {
		return fmt.Errorf("option_scan_limit must be >= 4, got %d", c.OptionScanLimit)
	}
	if c.AnswerWindow < 0 {
		return fmt.Errorf("answer_window must be >= 0, got %d", c.AnswerWindow)
	}
	return nil
}
