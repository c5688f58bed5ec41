package gridmark

import "github.com/tsawler/gridmark/orient"

// extractOptions holds the session's output shaping options.
type extractOptions struct {
	joinMode  orient.JoinMode
	transpose bool
}

func defaultOptions() extractOptions {
	return extractOptions{
		joinMode:  orient.JoinAuto,
		transpose: false,
	}
}

// JoinWithSpaces makes multi-line cell text join with spaces instead of
// newlines.
func (s *Session) JoinWithSpaces() *Session {
	s.options.joinMode = orient.JoinSpace
	s.assembler.Corrector.JoinMode = orient.JoinSpace
	return s
}

// JoinWithNewlines puts every text run in a cell on its own line.
func (s *Session) JoinWithNewlines() *Session {
	s.options.joinMode = orient.JoinNewline
	s.assembler.Corrector.JoinMode = orient.JoinNewline
	return s
}

// Transpose swaps rows and columns in the merged dataset.
func (s *Session) Transpose() *Session {
	s.options.transpose = true
	return s
}
