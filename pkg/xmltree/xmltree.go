// Package xmltree provides the namespace-aware query layer shared by the
// document parsers: XPath lookups with an optional unqualified fallback,
// text extraction helpers matching the lxml text model, and annotation
// stripping that preserves tail text.
package xmltree

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// LookupPolicy controls how a Finder resolves namespaced expressions.
type LookupPolicy int

const (
	// NamespaceOnly resolves expressions strictly against the bound
	// namespace map.
	NamespaceOnly LookupPolicy = iota

	// NamespaceThenUnqualified retries a failed lookup with all namespace
	// prefixes removed from the expression. This supports lenient handling
	// of legacy documents whose elements carry no namespace.
	NamespaceThenUnqualified
)

// Finder performs XPath lookups bound to a fixed namespace map.
// Compiled expressions are cached; a Finder is safe for concurrent use.
//
// Expressions are fixed literals in practice, so Finder panics on an
// invalid expression, in the manner of regexp.MustCompile.
type Finder struct {
	namespaces map[string]string
	policy     LookupPolicy

	mu       sync.RWMutex
	compiled map[string]*xpath.Expr
}

// NewFinder creates a Finder bound to the given prefix-to-URI namespace map.
func NewFinder(namespaces map[string]string, policy LookupPolicy) *Finder {
	bound := make(map[string]string, len(namespaces))
	for prefix, uri := range namespaces {
		bound[prefix] = uri
	}
	return &Finder{
		namespaces: bound,
		policy:     policy,
		compiled:   make(map[string]*xpath.Expr),
	}
}

// First returns the first node matching expr below scope, or nil.
// Under NamespaceThenUnqualified, a miss is retried with namespace
// prefixes stripped from the expression.
func (finder *Finder) First(scope *xmlquery.Node, expr string) *xmlquery.Node {
	if scope == nil {
		return nil
	}
	if node := xmlquery.QuerySelector(scope, finder.compile(expr)); node != nil {
		return node
	}
	if finder.policy == NamespaceThenUnqualified {
		if unqualified := finder.unqualify(expr); unqualified != expr {
			return xmlquery.QuerySelector(scope, finder.compile(unqualified))
		}
	}
	return nil
}

// All returns every node matching expr below scope, in document order.
// The unqualified fallback applies only when the namespaced lookup
// matched nothing.
func (finder *Finder) All(scope *xmlquery.Node, expr string) []*xmlquery.Node {
	if scope == nil {
		return nil
	}
	nodes := xmlquery.QuerySelectorAll(scope, finder.compile(expr))
	if len(nodes) == 0 && finder.policy == NamespaceThenUnqualified {
		if unqualified := finder.unqualify(expr); unqualified != expr {
			nodes = xmlquery.QuerySelectorAll(scope, finder.compile(unqualified))
		}
	}
	return nodes
}

// compile returns a cached compiled expression, compiling it on first use.
func (finder *Finder) compile(expr string) *xpath.Expr {
	finder.mu.RLock()
	cached, ok := finder.compiled[expr]
	finder.mu.RUnlock()
	if ok {
		return cached
	}

	compiled, err := xpath.CompileWithNS(expr, finder.namespaces)
	if err != nil {
		panic(fmt.Sprintf("xmltree: invalid XPath expression %q: %v", expr, err))
	}

	finder.mu.Lock()
	finder.compiled[expr] = compiled
	finder.mu.Unlock()
	return compiled
}

// unqualify removes every bound namespace prefix from the expression.
func (finder *Finder) unqualify(expr string) string {
	for prefix := range finder.namespaces {
		expr = strings.ReplaceAll(expr, prefix+":", "")
	}
	return expr
}

// Load parses the XML file at path and returns the document node.
// Unreadable or malformed input yields a *ParseError.
func Load(path string) (*xmlquery.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	doc, err := xmlquery.Parse(file)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse parses XML from r and returns the document node.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// Text returns the text of n that precedes its first child element,
// matching the lxml .text accessor. It returns "" when the element has
// no leading text.
func Text(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	var builder strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			break
		}
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			builder.WriteString(child.Data)
		}
	}
	return builder.String()
}

// InnerText returns the concatenation of every descendant text node of n,
// in document order, with no separator.
func InnerText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.InnerText()
}

// TextFragments returns the data of every descendant text node of n in
// document order. Joining the fragments with a separator matches the
// lxml itertext join idiom used by the recital extractor.
func TextFragments(n *xmlquery.Node) []string {
	var fragments []string
	var walk func(node *xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				fragments = append(fragments, child.Data)
			case xmlquery.ElementNode:
				walk(child)
			}
		}
	}
	if n != nil {
		walk(n)
	}
	return fragments
}

// CollapseWhitespace trims text and collapses internal whitespace runs to
// a single space.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Clone returns a deep copy of n, detached from any parent or siblings.
func Clone(n *xmlquery.Node) *xmlquery.Node {
	if n == nil {
		return nil
	}
	cloned := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		Attr:         append([]xmlquery.Attr(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		childClone := Clone(child)
		childClone.Parent = cloned
		if cloned.FirstChild == nil {
			cloned.FirstChild = childClone
		} else {
			cloned.LastChild.NextSibling = childClone
			childClone.PrevSibling = cloned.LastChild
		}
		cloned.LastChild = childClone
	}
	return cloned
}

// Detach removes n from its parent's child list. Text nodes around n stay
// in place, so any tail text that followed n in document order remains
// part of the parent's text.
func Detach(n *xmlquery.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	if n.Parent.FirstChild == n {
		n.Parent.FirstChild = n.NextSibling
	}
	if n.Parent.LastChild == n {
		n.Parent.LastChild = n.PrevSibling
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent = nil
	n.PrevSibling = nil
	n.NextSibling = nil
}
