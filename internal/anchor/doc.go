// Package anchor resolves a modification's literal anchor text against the
// current content of its target file. Matching is exact substring search,
// never regular expressions; an anchor must match exactly one contiguous
// span, and zero or multiple matches are distinct failure conditions. The
// resolver also performs the already-applied detection that makes repeated
// runs of the same manifest safe no-ops.
package anchor
