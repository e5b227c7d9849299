package akn

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/AlessioNar/op-cellar/pkg/xmltree"
)

// Identification extracts the FRBR Work, Expression and Manifestation
// records from the identification block. It returns nil when the document
// has no identification block. A missing mandatory child element inside a
// present block is an error wrapping xmltree.ErrAttributeNotFound; a
// missing attribute on a present element maps to the empty string.
func (doc *Document) Identification() (*Identification, error) {
	identification := doc.find.First(doc.root, ".//akn:meta/akn:identification")
	if identification == nil {
		return nil, nil
	}

	work, err := doc.frbrWork(identification)
	if err != nil {
		return nil, err
	}
	expression, err := doc.frbrExpression(identification)
	if err != nil {
		return nil, err
	}
	manifestation, err := doc.frbrManifestation(identification)
	if err != nil {
		return nil, err
	}

	return &Identification{
		Work:          work,
		Expression:    expression,
		Manifestation: manifestation,
	}, nil
}

func (doc *Document) frbrWork(identification *xmlquery.Node) (*FRBRWork, error) {
	work := doc.find.First(identification, "akn:FRBRWork")
	if work == nil {
		return nil, nil
	}

	values, err := doc.requireAttrValues(work, "FRBRWork", map[string]string{
		"akn:FRBRthis":    "value",
		"akn:FRBRuri":     "value",
		"akn:FRBRalias":   "value",
		"akn:FRBRdate":    "date",
		"akn:FRBRauthor":  "href",
		"akn:FRBRcountry": "value",
		"akn:FRBRnumber":  "value",
	})
	if err != nil {
		return nil, err
	}

	return &FRBRWork{
		This:    values["akn:FRBRthis"],
		URI:     values["akn:FRBRuri"],
		Alias:   values["akn:FRBRalias"],
		Date:    values["akn:FRBRdate"],
		Author:  values["akn:FRBRauthor"],
		Country: values["akn:FRBRcountry"],
		Number:  values["akn:FRBRnumber"],
	}, nil
}

func (doc *Document) frbrExpression(identification *xmlquery.Node) (*FRBRExpression, error) {
	expression := doc.find.First(identification, "akn:FRBRExpression")
	if expression == nil {
		return nil, nil
	}

	values, err := doc.requireAttrValues(expression, "FRBRExpression", map[string]string{
		"akn:FRBRthis":     "value",
		"akn:FRBRuri":      "value",
		"akn:FRBRdate":     "date",
		"akn:FRBRauthor":   "href",
		"akn:FRBRlanguage": "language",
	})
	if err != nil {
		return nil, err
	}

	return &FRBRExpression{
		This:     values["akn:FRBRthis"],
		URI:      values["akn:FRBRuri"],
		Date:     values["akn:FRBRdate"],
		Author:   values["akn:FRBRauthor"],
		Language: values["akn:FRBRlanguage"],
	}, nil
}

func (doc *Document) frbrManifestation(identification *xmlquery.Node) (*FRBRManifestation, error) {
	manifestation := doc.find.First(identification, "akn:FRBRManifestation")
	if manifestation == nil {
		return nil, nil
	}

	values, err := doc.requireAttrValues(manifestation, "FRBRManifestation", map[string]string{
		"akn:FRBRthis":   "value",
		"akn:FRBRuri":    "value",
		"akn:FRBRdate":   "date",
		"akn:FRBRauthor": "href",
	})
	if err != nil {
		return nil, err
	}

	return &FRBRManifestation{
		This:   values["akn:FRBRthis"],
		URI:    values["akn:FRBRuri"],
		Date:   values["akn:FRBRdate"],
		Author: values["akn:FRBRauthor"],
	}, nil
}

// requireAttrValues reads one attribute from each of a fixed set of
// mandatory child elements. The child elements must be present; the
// attributes themselves may be absent and read as "".
func (doc *Document) requireAttrValues(scope *xmlquery.Node, context string, children map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(children))
	for childExpr, attrName := range children {
		child, err := xmltree.RequireChild(doc.find, scope, childExpr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", context, err)
		}
		values[childExpr] = child.SelectAttr(attrName)
	}
	return values, nil
}

// References extracts the first TLCOrganization entry from the references
// block. It returns nil when the document has no such entry.
func (doc *Document) References() *Reference {
	organization := doc.find.First(doc.root, ".//akn:meta/akn:references/akn:TLCOrganization")
	if organization == nil {
		return nil
	}

	return &Reference{
		EID:    organization.SelectAttr("eId"),
		Href:   organization.SelectAttr("href"),
		ShowAs: organization.SelectAttr("showAs"),
	}
}

// Proprietary extracts the Formex document reference from the proprietary
// metadata block. It returns nil when the block or its DOCUMENT.REF child
// is absent. The COLL, YEAR, LG.DOC and NO.SEQ children are mandatory once
// DOCUMENT.REF is present.
func (doc *Document) Proprietary() (*Proprietary, error) {
	proprietary := doc.find.First(doc.root, ".//akn:meta/akn:proprietary")
	if proprietary == nil {
		return nil, nil
	}

	documentRef := doc.find.First(proprietary, "fmx:DOCUMENT.REF")
	if documentRef == nil {
		return nil, nil
	}

	collection, err := xmltree.RequireChild(doc.find, documentRef, "fmx:COLL")
	if err != nil {
		return nil, fmt.Errorf("proprietary: %w", err)
	}
	year, err := xmltree.RequireChild(doc.find, documentRef, "fmx:YEAR")
	if err != nil {
		return nil, fmt.Errorf("proprietary: %w", err)
	}
	documentLanguage, err := xmltree.RequireChild(doc.find, proprietary, "fmx:LG.DOC")
	if err != nil {
		return nil, fmt.Errorf("proprietary: %w", err)
	}
	sequenceNumber, err := xmltree.RequireChild(doc.find, proprietary, "fmx:NO.SEQ")
	if err != nil {
		return nil, fmt.Errorf("proprietary: %w", err)
	}

	return &Proprietary{
		File:             documentRef.SelectAttr("FILE"),
		Collection:       xmltree.Text(collection),
		Year:             xmltree.Text(year),
		DocumentLanguage: xmltree.Text(documentLanguage),
		SequenceNumber:   xmltree.Text(sequenceNumber),
	}, nil
}
