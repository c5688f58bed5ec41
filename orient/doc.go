// Package orient reconstructs readable text from positioned runs whose
// glyphs may be rotated on the page. Each run carries an orientation
// hint; the corrector takes a plurality vote over the hints of a cell's
// runs, reorders the runs to match the winning orientation's reading
// direction, and flags the result for review when the vote is
// ambiguous. Runs with an unknown orientation do not vote.
//
// The package also owns the join rules used to turn a sequence of runs
// into a single string, so upright and corrected text flow through the
// same normalization.
package orient
