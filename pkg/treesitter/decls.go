package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"doxy-next-gen/pkg/ast"
)

// builder turns tree-sitter nodes into the declaration tree
type builder struct {
	src   []byte
	pos   *positions
	unit  *ast.TranslationUnit
	index *ast.RecordIndex
}

// children visits the children of n as members of scope. access is the
// access in effect for the first member; access specifiers change it.
func (b *builder) children(n *sitter.Node, scope *ast.Decl, access ast.Access) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "access_specifier" {
			access = accessOf(b.text(child))
			continue
		}
		b.visit(child, scope, access)
	}
}

func (b *builder) visit(n *sitter.Node, scope *ast.Decl, access ast.Access) {
	switch n.Type() {
	case "namespace_definition":
		b.namespace(n, scope)

	case "class_specifier", "struct_specifier", "union_specifier":
		b.record(n, n, scope, access)

	case "enum_specifier":
		b.enum(n, n, scope, access)

	case "function_definition":
		if fd, ok := declarator(n); ok {
			b.function(n, fd, scope, access)
		}

	case "declaration", "field_declaration":
		b.declaration(n, scope, access)

	case "template_declaration",
		"preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		b.children(n, scope, access)

	case "linkage_specification":
		if body := n.ChildByFieldName("body"); body != nil {
			if body.Type() == "declaration_list" {
				b.children(body, scope, access)
			} else {
				b.visit(body, scope, access)
			}
		}
	}
}

// declaration handles declaration and field_declaration nodes: function
// prototypes, records and enums declared with a trailing ';', variables and
// fields.
func (b *builder) declaration(n *sitter.Node, scope *ast.Decl, access ast.Access) {
	d, isFunc := declarator(n)
	if isFunc {
		b.function(n, d, scope, access)
		return
	}

	if specifier := n.ChildByFieldName("type"); specifier != nil {
		switch specifier.Type() {
		case "class_specifier", "struct_specifier", "union_specifier":
			if specifier.ChildByFieldName("body") != nil || d == nil {
				b.record(specifier, n, scope, access)
				return
			}
		case "enum_specifier":
			if specifier.ChildByFieldName("body") != nil || d == nil {
				b.enum(specifier, n, scope, access)
				return
			}
		}
	}
	if d != nil {
		b.variable(n, d, scope, access)
	}
}

func (b *builder) namespace(n *sitter.Node, scope *ast.Decl) {
	var names []string
	if name := n.ChildByFieldName("name"); name != nil {
		names = namespaceNames(name, b.src)
	}
	if len(names) == 0 {
		names = []string{""}
	}

	ext := b.pos.extent(n.StartByte(), n.EndByte())
	inner := scope
	for _, name := range names {
		decl := &ast.Decl{Kind: ast.KindNamespace, Name: name, Extent: ext}
		inner.AddChild(decl)
		b.index.Add(decl)
		inner = decl
	}

	if body := n.ChildByFieldName("body"); body != nil {
		b.children(body, inner, ast.AccessNone)
	}
}

func namespaceNames(n *sitter.Node, src []byte) []string {
	if n.Type() == "namespace_identifier" || n.Type() == "identifier" {
		return []string{n.Content(src)}
	}
	var names []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		names = append(names, namespaceNames(n.NamedChild(i), src)...)
	}
	return names
}

// record adds the class, struct or union declared by specifier. stmt is the
// node whose extent the declaration covers.
func (b *builder) record(specifier, stmt *sitter.Node, scope *ast.Decl, access ast.Access) {
	decl := &ast.Decl{
		Kind:   recordKind(specifier.Type()),
		Extent: b.stmtExtent(stmt, stmt == specifier),
	}
	if scope.IsRecordScope() {
		decl.Access = access
	}

	parent := scope
	if name := specifier.ChildByFieldName("name"); name != nil {
		parts := nameParts(name, b.src)
		decl.Name = last(parts)
		if qualifier := qualifierOf(parts); len(qualifier) > 0 {
			if resolved := b.index.Resolve(scope, qualifier); resolved != nil {
				parent = resolved
			} else {
				decl.Name = strings.Join(parts, "::")
			}
		}
	}
	scope.Attach(decl, parent)

	body := specifier.ChildByFieldName("body")
	if body == nil {
		return
	}
	b.index.Add(decl)

	defaultAccess := ast.AccessPublic
	if specifier.Type() == "class_specifier" {
		defaultAccess = ast.AccessPrivate
	}
	b.children(body, decl, defaultAccess)
}

func recordKind(nodeType string) ast.Kind {
	switch nodeType {
	case "class_specifier":
		return ast.KindClass
	case "struct_specifier":
		return ast.KindStruct
	default:
		return ast.KindOther
	}
}

func (b *builder) enum(specifier, stmt *sitter.Node, scope *ast.Decl, access ast.Access) {
	decl := &ast.Decl{
		Kind:   ast.KindEnum,
		Extent: b.stmtExtent(stmt, stmt == specifier),
	}
	if name := specifier.ChildByFieldName("name"); name != nil {
		decl.Name = last(nameParts(name, b.src))
	}
	if scope.IsRecordScope() {
		decl.Access = access
	}
	scope.AddChild(decl)
}

// function adds a function or member function. stmt is the definition or
// declaration node, fd its function declarator.
func (b *builder) function(stmt, fd *sitter.Node, scope *ast.Decl, access ast.Access) {
	var parts []string
	if fd.Type() == "operator_cast" {
		if typ := fd.ChildByFieldName("type"); typ != nil {
			parts = []string{"operator " + b.text(typ)}
		}
	} else if name := fd.ChildByFieldName("declarator"); name != nil {
		parts = nameParts(name, b.src)
	}
	if len(parts) == 0 {
		return
	}

	decl := &ast.Decl{
		Name:   last(parts),
		Extent: b.stmtExtent(stmt, false),
	}

	parent := scope
	if qualifier := qualifierOf(parts); len(qualifier) > 0 {
		if resolved := b.index.Resolve(scope, qualifier); resolved != nil {
			parent = resolved
		} else {
			decl.Name = strings.Join(parts, "::")
		}
	}

	decl.Kind = ast.FunctionKind(parent, decl.Name)
	if parent.IsRecordScope() {
		if parent == scope {
			decl.Access = access
		} else {
			decl.Access = ast.MemberAccess(parent, decl.Name)
		}
	}
	scope.Attach(decl, parent)
}

func (b *builder) variable(stmt, d *sitter.Node, scope *ast.Decl, access ast.Access) {
	parts := nameParts(d, b.src)
	if len(parts) == 0 {
		return
	}

	decl := &ast.Decl{
		Kind:   ast.KindVariable,
		Name:   last(parts),
		Extent: b.stmtExtent(stmt, false),
	}

	parent := scope
	if qualifier := qualifierOf(parts); len(qualifier) > 0 {
		resolved := b.index.Resolve(scope, qualifier)
		if resolved == nil {
			return
		}
		parent = resolved
	}
	if parent.IsRecordScope() {
		decl.Kind = ast.KindField
		if parent == scope {
			decl.Access = access
		} else {
			decl.Access = ast.MemberAccess(parent, decl.Name)
		}
	}
	scope.Attach(decl, parent)
}

// stmtExtent returns the extent of stmt, widened to any enclosing template
// headers. With semicolon set, a ';' right after stmt is included; records
// declared at namespace scope leave it outside their node.
func (b *builder) stmtExtent(stmt *sitter.Node, semicolon bool) ast.Extent {
	start, end := stmt.StartByte(), stmt.EndByte()
	for p := stmt.Parent(); p != nil && p.Type() == "template_declaration"; p = p.Parent() {
		start = p.StartByte()
	}
	if semicolon {
		if next := stmt.NextSibling(); next != nil && next.Type() == ";" {
			end = next.EndByte()
		}
	}
	return b.pos.extent(start, end)
}

func (b *builder) text(n *sitter.Node) string {
	return n.Content(b.src)
}

// declarator returns the first declarator of a declaration with pointer,
// reference and initializer wrappers removed. isFunc reports a function
// declarator.
func declarator(n *sitter.Node) (d *sitter.Node, isFunc bool) {
	d = n.ChildByFieldName("declarator")
	for d != nil {
		switch d.Type() {
		case "function_declarator", "operator_cast":
			return d, true
		case "pointer_declarator", "init_declarator", "attributed_declarator", "array_declarator":
			d = d.ChildByFieldName("declarator")
		case "reference_declarator":
			d = lastNamedChild(d)
		default:
			return d, false
		}
	}
	return nil, false
}

func lastNamedChild(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

// nameParts splits a possibly qualified declarator name into its segments,
// e.g. ["ns", "Foo", "~Foo"].
func nameParts(n *sitter.Node, src []byte) []string {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "field_identifier", "type_identifier", "namespace_identifier":
		return []string{n.Content(src)}
	case "destructor_name", "operator_name":
		return []string{normalizeName(n.Content(src))}
	case "template_type", "template_function":
		return nameParts(n.ChildByFieldName("name"), src)
	case "qualified_identifier":
		var parts []string
		if scope := n.ChildByFieldName("scope"); scope != nil {
			parts = append(parts, nameParts(scope, src)...)
		}
		return append(parts, nameParts(n.ChildByFieldName("name"), src)...)
	case "pointer_declarator", "init_declarator", "array_declarator", "attributed_declarator":
		return nameParts(n.ChildByFieldName("declarator"), src)
	case "reference_declarator":
		return nameParts(lastNamedChild(n), src)
	default:
		return nil
	}
}

// normalizeName removes the whitespace tree-sitter keeps inside names like
// "operator ==" or "~ Foo", leaving one space between words.
func normalizeName(s string) string {
	fields := strings.Fields(s)
	var out strings.Builder
	for i, f := range fields {
		if i > 0 && isWordEnd(fields[i-1]) && isWordStart(f) {
			out.WriteByte(' ')
		}
		out.WriteString(f)
	}
	return out.String()
}

func isWordStart(s string) bool {
	c := s[0]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isWordEnd(s string) bool {
	c := s[len(s)-1]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func last(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func qualifierOf(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	return parts[:len(parts)-1]
}

func accessOf(s string) ast.Access {
	switch {
	case strings.HasPrefix(s, "public"):
		return ast.AccessPublic
	case strings.HasPrefix(s, "protected"):
		return ast.AccessProtected
	case strings.HasPrefix(s, "private"):
		return ast.AccessPrivate
	default:
		return ast.AccessNone
	}
}
