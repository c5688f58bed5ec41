// Package detect proposes column and row line positions from a rendered
// page region. Detection is projection based: the region is reduced to a
// single-channel intensity image, pixels darker than the ink threshold
// form a binary ink mask, and 1-D projection profiles of the mask are
// scanned for local maxima that cover enough of the region to be a
// ruled line. Nearby candidates are merged at their mean position and
// translated back into page-space coordinates.
//
// Detection is deterministic: running it twice over an unchanged region
// with unchanged thresholds yields identical candidates. A region with
// no line exceeding the threshold yields empty candidate lists, which
// is a normal result rather than an error.
package detect
