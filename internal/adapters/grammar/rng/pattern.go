package rng

// kind is the type of a simplified pattern node. Both syntaxes are read into
// the same pattern tree before the content model is built.
type kind uint8

const (
	kindElement kind = iota
	kindAttribute
	kindGroup
	kindInterleave
	kindChoice
	kindOptional
	kindZeroOrMore
	kindOneOrMore
	kindMixed
	kindText
	kindValue
	kindEmpty
	kindNotAllowed
	kindRef
)

type qname struct {
	ns    string
	local string
}

// nameClass is the set of names an element or attribute pattern accepts.
// Exceptions are not tracked; a class with any set accepts every name.
type nameClass struct {
	names []qname
	any   bool
}

type pattern struct {
	kind     kind
	names    nameClass
	children []*pattern
	// ref is the define a kindRef points to, empty for the start of scope.
	ref   string
	scope *scope
	value string
	doc   string
	// defaultValue is the a:defaultValue annotation of an attribute.
	defaultValue string
}

// scope holds the named patterns of one grammar element. Nested grammars
// keep a link to their parent for parentRef.
type scope struct {
	start   *pattern
	defines map[string]*pattern
	parent  *scope
}

func newScope(parent *scope) *scope {
	return &scope{defines: make(map[string]*pattern), parent: parent}
}

// combine merges a definition with an earlier one of the same name.
func combine(prev, next *pattern, interleave bool) *pattern {
	if prev == nil {
		return next
	}
	k := kindChoice
	if interleave {
		k = kindInterleave
	}
	return &pattern{kind: k, children: []*pattern{prev, next}}
}

func (s *scope) define(name string, p *pattern, interleave bool) {
	if name == "" {
		s.start = combine(s.start, p, interleave)
		return
	}
	s.defines[name] = combine(s.defines[name], p, interleave)
}

func (s *scope) lookup(name string) *pattern {
	if name == "" {
		return s.start
	}
	return s.defines[name]
}

func group(children []*pattern) *pattern {
	switch len(children) {
	case 0:
		return &pattern{kind: kindEmpty}
	case 1:
		return children[0]
	default:
		return &pattern{kind: kindGroup, children: children}
	}
}
