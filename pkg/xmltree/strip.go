package xmltree

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Strip returns a copy of subtree with every element matched by selector
// removed. The input tree is left untouched, so extraction operations that
// strip annotations never affect what a later operation sees.
//
// The trimmed inner text of each removed element is returned in document
// order; the text does not appear in the stripped tree.
func Strip(finder *Finder, subtree *xmlquery.Node, selector string) (*xmlquery.Node, []string) {
	cloned := Clone(subtree)
	removed := StripInPlace(finder, cloned, selector)
	return cloned, removed
}

// StripInPlace removes every element matched by selector below subtree,
// mutating the tree. Tail text following a removed element is preserved:
// text is held in sibling text nodes, which stay attached to the parent
// when the element is detached. Removing an already-stripped selector is
// a no-op, so the operation is idempotent.
//
// The trimmed inner text of each removed element is returned.
func StripInPlace(finder *Finder, subtree *xmlquery.Node, selector string) []string {
	var removed []string
	for _, match := range finder.All(subtree, selector) {
		removed = append(removed, strings.TrimSpace(match.InnerText()))
		Detach(match)
	}
	return removed
}
