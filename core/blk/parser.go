package blk

import (
	"strconv"
	"strings"
)

// Parse parses one raw config file into a typed tree. The returned node is a
// synthetic root block whose children are the file's top level entries.
//
// The format is the subset the game's config files actually use: nested
// named blocks, typed key/value scalars with an optional type marker
// (name:t, name:i, name:r, name:b), comma separated arrays of uniform type,
// and line or block comments. Any malformed input yields a *SyntaxError
// carrying the file name and line; no partial tree is returned.
func Parse(file string, src []byte) (*Node, error) {
	p := &parser{file: file, lex: newLexer(file, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	root := &Node{Kind: KindBlock, Line: 1}
	if err := p.parseEntries(root, true); err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	file    string
	lex     *lexer
	tok     token
	pending *token
}

func (p *parser) advance() error {
	if p.pending != nil {
		p.tok = *p.pending
		p.pending = nil
		return nil
	}
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// peek returns the token after the current one without consuming it.
func (p *parser) peek() (token, error) {
	if p.pending == nil {
		t, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.pending = &t
	}
	return *p.pending, nil
}

// parseEntries consumes entries until the closing brace of parent, or until
// EOF for the synthetic root.
func (p *parser) parseEntries(parent *Node, topLevel bool) error {
	for {
		switch p.tok.kind {
		case tokEOF:
			if !topLevel {
				return syntaxErr(p.file, p.tok.line, "unexpected end of input: block %q is not closed", parent.Name)
			}
			return nil
		case tokRBrace:
			if topLevel {
				return syntaxErr(p.file, p.tok.line, "unbalanced '}'")
			}
			return nil
		case tokIdent:
			if err := p.parseEntry(parent); err != nil {
				return err
			}
		default:
			return syntaxErr(p.file, p.tok.line, "expected identifier, got %s", p.tok.kind)
		}
	}
}

func (p *parser) parseEntry(parent *Node) error {
	nameTok := p.tok
	name, marker, err := p.splitMarker(nameTok)
	if err != nil {
		return err
	}
	if err := p.advance(); err != nil {
		return err
	}

	switch p.tok.kind {
	case tokLBrace:
		if marker != 0 {
			return syntaxErr(p.file, nameTok.line, "block %q cannot carry a type marker", name)
		}
		child := &Node{Name: name, Kind: KindBlock, Line: nameTok.line}
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseEntries(child, false); err != nil {
			return err
		}
		// parseEntries leaves us on the closing brace
		if err := p.advance(); err != nil {
			return err
		}
		parent.Children = append(parent.Children, child)
		return nil
	case tokAssign:
		if err := p.advance(); err != nil {
			return err
		}
		node, err := p.parseValue(name, marker, nameTok.line)
		if err != nil {
			return err
		}
		parent.Children = append(parent.Children, node)
		return nil
	default:
		return syntaxErr(p.file, p.tok.line, "expected '{' or '=' after %q, got %s", name, p.tok.kind)
	}
}

// parseValue parses one scalar or a comma separated array of scalars.
// A trailing comma is tolerated.
func (p *parser) parseValue(name string, marker byte, line int) (*Node, error) {
	var elems []*Node
	sawComma := false
	for {
		elem, err := p.parseScalar(marker)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokComma {
			break
		}
		sawComma = true
		if err := p.advance(); err != nil {
			return nil, err
		}
		cont, err := p.continuesArray()
		if err != nil {
			return nil, err
		}
		if !cont {
			break // trailing comma
		}
	}

	if len(elems) == 1 && !sawComma {
		one := elems[0]
		one.Name = name
		one.Line = line
		return one, nil
	}

	if err := p.uniformKind(elems, line); err != nil {
		return nil, err
	}
	return &Node{Name: name, Kind: KindArray, Line: line, Elems: elems}, nil
}

// continuesArray decides whether the token after a comma starts another
// element or the comma was trailing and the next entry follows. Bare words
// are ambiguous since keys may be named like bool words: a bool word
// followed by '=' or '{' is the next entry's key, not an element.
func (p *parser) continuesArray() (bool, error) {
	switch p.tok.kind {
	case tokString, tokNumber:
		return true, nil
	case tokIdent:
		if _, ok := parseBoolWord(p.tok.text); !ok {
			return false, nil
		}
		next, err := p.peek()
		if err != nil {
			return false, err
		}
		return next.kind != tokAssign && next.kind != tokLBrace, nil
	}
	return false, nil
}

// uniformKind validates that array elements share one scalar kind.
// Ints are widened when mixed with floats.
func (p *parser) uniformKind(elems []*Node, line int) error {
	kind := elems[0].Kind
	for _, e := range elems[1:] {
		if e.Kind == kind {
			continue
		}
		if kind == KindInt && e.Kind == KindFloat || kind == KindFloat && e.Kind == KindInt {
			kind = KindFloat
			continue
		}
		return syntaxErr(p.file, line, "array mixes %s and %s elements", kind, e.Kind)
	}
	if kind == KindFloat {
		for _, e := range elems {
			if e.Kind == KindInt {
				e.Kind = KindFloat
				e.FloatVal = float64(e.IntVal)
				e.IntVal = 0
			}
		}
	}
	return nil
}

// parseScalar converts the current token into a scalar node, honoring the
// declared type marker when present and inferring from literal shape
// otherwise.
func (p *parser) parseScalar(marker byte) (*Node, error) {
	t := p.tok
	if !isScalarStart(t.kind) {
		return nil, syntaxErr(p.file, t.line, "expected a scalar value, got %s", t.kind)
	}

	switch marker {
	case 't':
		if t.kind != tokString {
			return nil, syntaxErr(p.file, t.line, "value %q does not match declared type t (string)", t.text)
		}
		return &Node{Kind: KindString, StrVal: t.text, Line: t.line}, nil
	case 'i':
		if t.kind != tokNumber || strings.Contains(t.text, ".") {
			return nil, syntaxErr(p.file, t.line, "value %q does not match declared type i (int)", t.text)
		}
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, syntaxErr(p.file, t.line, "invalid int literal %q", t.text)
		}
		return &Node{Kind: KindInt, IntVal: v, Line: t.line}, nil
	case 'r':
		if t.kind != tokNumber {
			return nil, syntaxErr(p.file, t.line, "value %q does not match declared type r (float)", t.text)
		}
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, syntaxErr(p.file, t.line, "invalid float literal %q", t.text)
		}
		return &Node{Kind: KindFloat, FloatVal: v, Line: t.line}, nil
	case 'b':
		v, ok := parseBoolWord(t.text)
		if !ok {
			return nil, syntaxErr(p.file, t.line, "value %q does not match declared type b (bool)", t.text)
		}
		return &Node{Kind: KindBool, BoolVal: v, Line: t.line}, nil
	case 0:
		return p.inferScalar(t)
	default:
		// splitMarker rejects unknown markers before we get here
		return nil, syntaxErr(p.file, t.line, "unrecognized type marker %q", string(marker))
	}
}

func (p *parser) inferScalar(t token) (*Node, error) {
	switch t.kind {
	case tokString:
		return &Node{Kind: KindString, StrVal: t.text, Line: t.line}, nil
	case tokNumber:
		if strings.Contains(t.text, ".") {
			v, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return nil, syntaxErr(p.file, t.line, "invalid float literal %q", t.text)
			}
			return &Node{Kind: KindFloat, FloatVal: v, Line: t.line}, nil
		}
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, syntaxErr(p.file, t.line, "invalid int literal %q", t.text)
		}
		return &Node{Kind: KindInt, IntVal: v, Line: t.line}, nil
	case tokIdent:
		if v, ok := parseBoolWord(t.text); ok {
			return &Node{Kind: KindBool, BoolVal: v, Line: t.line}, nil
		}
		return nil, syntaxErr(p.file, t.line, "bare word %q is not a valid scalar", t.text)
	}
	return nil, syntaxErr(p.file, t.line, "expected a scalar value, got %s", t.kind)
}

// splitMarker separates a key name from its optional single letter type
// marker (name:t, name:i, name:r, name:b).
func (p *parser) splitMarker(t token) (string, byte, error) {
	idx := strings.IndexByte(t.text, ':')
	if idx < 0 {
		return t.text, 0, nil
	}
	name := t.text[:idx]
	suffix := t.text[idx+1:]
	if name == "" {
		return "", 0, syntaxErr(p.file, t.line, "missing key name before type marker in %q", t.text)
	}
	switch suffix {
	case "t", "i", "r", "b":
		return name, suffix[0], nil
	default:
		return "", 0, syntaxErr(p.file, t.line, "unrecognized scalar type suffix %q in %q", suffix, t.text)
	}
}

func isScalarStart(k tokenKind) bool {
	return k == tokString || k == tokNumber || k == tokIdent
}

func parseBoolWord(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "t", "on":
		return true, true
	case "false", "no", "f", "off":
		return false, true
	}
	return false, false
}
