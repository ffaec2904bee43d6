// Package validation checks documents against content models: declared
// elements and attributes, required attributes and children, and the kind of
// content an element allows.
package validation

import (
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// Validator reports structural violations of a document.
type Validator struct{}

// New creates a validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks doc against the model of its document element namespace.
// models maps namespace URIs to content models; a document whose root
// namespace has no model yields no diagnostics.
func (v *Validator) Validate(doc ports.Document, models map[string]ports.CMDocument) []domain.Diagnostic {
	root := doc.Root()
	if root == nil {
		return nil
	}
	cm, ok := models[root.NamespaceURI()]
	if !ok || cm == nil {
		return nil
	}

	var diags []domain.Diagnostic
	if dt := doc.Doctype(); dt != nil && dt.Name != "" && cm.Kind() == domain.GrammarDTD && dt.Name != qualifiedName(root) {
		diags = append(diags, errorAt(root, domain.CodeDoctypeMismatch,
			"Document root element \""+qualifiedName(root)+"\", must match DOCTYPE root \""+dt.Name+"\"."))
	}

	decl := cm.FindElement(root.LocalName(), root.NamespaceURI())
	if decl == nil {
		return append(diags, errorAt(root, domain.CodeUnknownRoot,
			"Cannot find the declaration of element \""+qualifiedName(root)+"\"."))
	}
	return v.element(diags, decl, root)
}

func (v *Validator) element(diags []domain.Diagnostic, decl ports.CMElement, node ports.Node) []domain.Diagnostic {
	diags = attributes(diags, decl, node)

	children := node.Children()
	switch decl.Content() {
	case domain.ContentAny:
		return diags
	case domain.ContentEmpty:
		if len(children) > 0 || node.HasText() {
			diags = append(diags, errorAt(node, domain.CodeEmptyContent,
				"Element \""+qualifiedName(node)+"\" must have no character or element information item children, because the type's content type is empty."))
		}
		return diags
	case domain.ContentText:
		for _, c := range children {
			diags = append(diags, errorAt(c, domain.CodeUnknownElement,
				"Element \""+qualifiedName(node)+"\" cannot have element children; found \""+qualifiedName(c)+"\"."))
		}
		return diags
	case domain.ContentElements:
		if node.HasText() {
			diags = append(diags, errorAt(node, domain.CodeTextNotAllowed,
				"Element \""+qualifiedName(node)+"\" cannot have character children, because the type's content type is element-only."))
		}
	}

	present := make(map[ports.CMElement]bool)
	for _, c := range children {
		child := decl.FindChild(c.LocalName(), c.NamespaceURI())
		if child == nil {
			diags = append(diags, errorAt(c, domain.CodeUnknownElement,
				"Invalid content was found starting with element \""+qualifiedName(c)+"\"."))
			continue
		}
		present[child] = true
		diags = v.element(diags, child, c)
	}
	for _, required := range decl.RequiredChildren() {
		if !present[required] {
			diags = append(diags, errorAt(node, domain.CodeMissingChild,
				"The content of element \""+qualifiedName(node)+"\" is not complete. \""+required.Name()+"\" is expected."))
		}
	}
	return diags
}

func attributes(diags []domain.Diagnostic, decl ports.CMElement, node ports.Node) []domain.Diagnostic {
	for _, a := range node.Attributes() {
		if exempt(a) || decl.AnyAttribute() {
			continue
		}
		if decl.FindAttribute(a.LocalName, a.NamespaceURI) == nil {
			diags = append(diags, errorAt(node, domain.CodeUnknownAttribute,
				"Attribute \""+a.QName()+"\" is not allowed to appear in element \""+qualifiedName(node)+"\"."))
		}
	}
	for _, a := range decl.Attributes() {
		if !a.Required() {
			continue
		}
		if _, ok := node.Attribute(a.NamespaceURI(), a.Name()); !ok {
			diags = append(diags, errorAt(node, domain.CodeMissingAttribute,
				"Attribute \""+a.Name()+"\" must appear on element \""+qualifiedName(node)+"\"."))
		}
	}
	return diags
}

// exempt reports attributes that are never declared by a grammar.
func exempt(a domain.Attribute) bool {
	switch {
	case a.IsNamespaceDeclaration():
		return true
	case a.NamespaceURI == domain.XSINamespace, a.NamespaceURI == domain.XMLNamespace:
		return true
	default:
		return false
	}
}

func qualifiedName(n ports.Node) string {
	if n.Prefix() == "" {
		return n.LocalName()
	}
	return n.Prefix() + ":" + n.LocalName()
}

func errorAt(n ports.Node, code, msg string) domain.Diagnostic {
	return domain.Diagnostic{
		Range:    n.Range(),
		Severity: domain.SeverityError,
		Code:     code,
		Source:   domain.DiagnosticSource,
		Message:  msg,
	}
}
