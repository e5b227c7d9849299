package xmltree

import (
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
)

// ErrAttributeNotFound reports a mandatory attribute or child element
// missing inside a structure that is itself present. It is distinct from
// structural absence of an optional section, which extractors report as a
// nil record rather than an error.
var ErrAttributeNotFound = errors.New("required attribute or element not found")

// ParseError reports input that could not be opened or parsed as XML.
type ParseError struct {
	Path string
	Err  error
}

func (parseError *ParseError) Error() string {
	if parseError.Path == "" {
		return fmt.Sprintf("failed to parse XML: %v", parseError.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", parseError.Path, parseError.Err)
}

func (parseError *ParseError) Unwrap() error {
	return parseError.Err
}

// RequireChild returns the first node matching expr below scope, or an
// error wrapping ErrAttributeNotFound when no node matches.
func RequireChild(finder *Finder, scope *xmlquery.Node, expr string) (*xmlquery.Node, error) {
	node := finder.First(scope, expr)
	if node == nil {
		return nil, fmt.Errorf("%s: %w", expr, ErrAttributeNotFound)
	}
	return node, nil
}
