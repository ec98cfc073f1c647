package domain

import (
	"fmt"
	"strings"
)

// pathNode is one segment of the field-path tree. A node either has
// children (an object segment) or an assign func (a writable leaf),
// never both.
type pathNode struct {
	children map[string]pathNode
	assign   func(*Document, string)
}

var contractorFields = map[string]pathNode{
	"name":    {assign: func(d *Document, v string) { d.TitlePage.Contractor.Name = v }},
	"logo":    {assign: func(d *Document, v string) { d.TitlePage.Contractor.Logo = v }},
	"phone":   {assign: func(d *Document, v string) { d.TitlePage.Contractor.Phone = v }},
	"email":   {assign: func(d *Document, v string) { d.TitlePage.Contractor.Email = v }},
	"address": {assign: func(d *Document, v string) { d.TitlePage.Contractor.Address = v }},
	"license": {assign: func(d *Document, v string) { d.TitlePage.Contractor.License = v }},
}

var homeownerFields = map[string]pathNode{
	"name":    {assign: func(d *Document, v string) { d.TitlePage.Homeowner.Name = v }},
	"address": {assign: func(d *Document, v string) { d.TitlePage.Homeowner.Address = v }},
	"phone":   {assign: func(d *Document, v string) { d.TitlePage.Homeowner.Phone = v }},
	"email":   {assign: func(d *Document, v string) { d.TitlePage.Homeowner.Email = v }},
}

var titlePageFields = map[string]pathNode{
	"contractor":    {children: contractorFields},
	"homeowner":     {children: homeownerFields},
	"date":          {assign: func(d *Document, v string) { d.TitlePage.Date = v }},
	"propertyImage": {assign: func(d *Document, v string) { d.TitlePage.PropertyImage = v }},
	"projectTitle":  {assign: func(d *Document, v string) { d.TitlePage.ProjectTitle = v }},
}

var introPageFields = map[string]pathNode{
	"content":        {assign: func(d *Document, v string) { d.IntroPage.Content = v }},
	"signature":      {assign: func(d *Document, v string) { d.IntroPage.Signature = v }},
	"contractorName": {assign: func(d *Document, v string) { d.IntroPage.ContractorName = v }},
}

// documentFields is the root lookup table for ReplaceField. The contractor
// and homeowner subtrees are reachable from the root as well, matching how
// the editing surface addresses title-page parties directly.
var documentFields = map[string]pathNode{
	"titlePage":  {children: titlePageFields},
	"introPage":  {children: introPageFields},
	"contractor": {children: contractorFields},
	"homeowner":  {children: homeownerFields},
}

// ReplaceField returns a copy of the document with the leaf addressed by
// the dot-separated path replaced. A path naming an unknown segment, or
// stopping short of a leaf, or continuing past one, fails with
// ErrInvalidPath and leaves the document untouched. Only the addressed
// leaf changes.
func (d Document) ReplaceField(path string, value any) (Document, error) {
	segments := strings.Split(path, ".")
	table := documentFields
	for i, segment := range segments {
		node, ok := table[segment]
		if !ok {
			return d, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		if node.children != nil {
			table = node.children
			continue
		}
		if i != len(segments)-1 {
			return d, fmt.Errorf("%w: %q addresses through a leaf", ErrInvalidPath, path)
		}
		node.assign(&d, asString(value))
		return d, nil
	}
	return d, fmt.Errorf("%w: %q is not a leaf field", ErrInvalidPath, path)
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
