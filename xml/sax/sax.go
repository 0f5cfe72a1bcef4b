/*
NAME
  sax.go - the recursive-descent element walker and its four entry
  points: parse text, re-enter attributes, re-enter children, re-enter
  siblings.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package sax

import "errors"

// errAbort is returned internally when a callback requests early
// termination (Token-returning fn returned false); it is never surfaced
// to callers as an error.
var errAbort = errors.New("sax: aborted")

// Parser tokenizes a fixed buffer. The zero value is not usable; call
// New. A Parser is safe to re-enter at any Token it previously produced,
// any number of times and in any order.
type Parser struct {
	data []byte
}

// New returns a Parser over data. If data does not already end with a
// NUL byte, a copy with one appended is made, since tokens are
// documented to be safe to read one byte past their length.
func New(data []byte) *Parser {
	if len(data) == 0 || data[len(data)-1] != 0 {
		padded := make([]byte, len(data)+1)
		copy(padded, data)
		data = padded
	}
	return &Parser{data: data}
}

// ParseText walks the top-level content of the document: processing
// instructions, comments, a doctype and exactly one root element (plus
// anything following it, which is unusual but not rejected). fn is
// called for every Open, Attribute and Close token produced by the walk,
// depth first; returning false aborts the walk early (ParseText then
// returns nil, not an error). Non-whitespace text outside an element is
// a syntax error.
func (p *Parser) ParseText(fn func(Token) bool) error {
	return clean(p.walkSiblings(newScanner(p.data, 0), fn, false))
}

// ParseAttributes re-parses only the attribute list of the element whose
// opening tag is open, without descending into its children.
func (p *Parser) ParseAttributes(open Token, fn func(Token) bool) error {
	s := newScanner(p.data, open.Index)
	s.next() // '<'
	if _, err := s.parseName(); err != nil {
		return err
	}
	for {
		s.skipSpace()
		if s.peek() == '/' && s.peekAt(1) == '>' {
			return nil
		}
		if s.peek() == '>' {
			return nil
		}
		if s.eof() {
			return &SyntaxError{Row: s.row, Column: s.col, Msg: "unterminated opening tag"}
		}
		tok, err := parseAttribute(s)
		if err != nil {
			return err
		}
		if !fn(tok) {
			return nil
		}
	}
}

// ParseChildren re-parses the element's children (not the element
// itself), in document order. A self-closing element has none.
func (p *Parser) ParseChildren(open Token, fn func(Token) bool) error {
	if open.selfClosing {
		return nil
	}
	return clean(p.walkSiblings(newScanner(p.data, open.childrenFrom), fn, true))
}

// ParseSiblings re-parses the element itself (open, its attributes and
// children, and its close) followed by every element that follows it at
// the same nesting depth, stopping at the parent scope's closing tag.
// Reaching the end of input instead of such a closing tag is reported as
// a SyntaxError, including when open is a top-level element.
func (p *Parser) ParseSiblings(open Token, fn func(Token) bool) error {
	return clean(p.walkSiblings(newScanner(p.data, open.Index), fn, true))
}

// clean converts the internal abort sentinel into a nil error.
func clean(err error) error {
	if err == errAbort {
		return nil
	}
	return err
}

// walkSiblings parses a sequence of top-level constructs (comments,
// doctype, processing instructions, elements) starting at s's current
// position. If stopAtClose, a closing tag ("</...") ends the walk
// successfully without being consumed (the caller owns matching it
// against its own element); otherwise a closing tag is a syntax error,
// since it cannot belong to anything.
func (p *Parser) walkSiblings(s *scanner, fn func(Token) bool, stopAtClose bool) error {
	for {
		s.skipSpace()
		if s.eof() {
			if stopAtClose {
				return &SyntaxError{Row: s.row, Column: s.col, Msg: "unexpected end of input inside element"}
			}
			return nil
		}
		if s.peek() != '<' {
			return &SyntaxError{Row: s.row, Column: s.col, Msg: "text content is not allowed here"}
		}
		switch s.peekAt(1) {
		case '/':
			if stopAtClose {
				return nil
			}
			return &SyntaxError{Row: s.row, Column: s.col, Msg: "unexpected closing tag"}
		case '!':
			if s.peekAt(2) == '-' && s.peekAt(3) == '-' {
				s.next()
				s.next()
				s.next()
				s.next()
				if err := s.skipComment(); err != nil {
					return err
				}
			} else {
				s.next()
				s.next()
				if err := s.skipDeclaration(); err != nil {
					return err
				}
			}
		case '?':
			s.next()
			s.next()
			if err := s.skipProcessingInstruction(); err != nil {
				return err
			}
		default:
			if err := p.parseElement(s, fn); err != nil {
				return err
			}
		}
	}
}

// parseAttribute parses one name="value" pair at s's current position.
func parseAttribute(s *scanner) (Token, error) {
	row, col, index := s.row, s.col, s.pos
	name, err := s.parseName()
	if err != nil {
		return Token{}, err
	}
	s.skipSpace()
	if s.peek() != '=' {
		return Token{}, &SyntaxError{Row: s.row, Column: s.col, Msg: "expected '=' after attribute name"}
	}
	s.next()
	s.skipSpace()
	value, err := s.parseQuoted()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: Attribute, Name: name, Value: value, Row: row, Column: col, Index: index, Length: s.pos - index}, nil
}

// parseElement parses one element, its attributes and (recursively) its
// children, emitting every token to fn depth first. It consumes through
// the element's closing tag (or the "/>" of a self-closing element).
func (p *Parser) parseElement(s *scanner, fn func(Token) bool) error {
	row, col, index := s.row, s.col, s.pos
	s.next() // '<'
	name, err := s.parseName()
	if err != nil {
		return err
	}

	var selfClosing bool
	var attrs []Token
	for {
		s.skipSpace()
		switch {
		case s.peek() == '/' && s.peekAt(1) == '>':
			s.next()
			s.next()
			selfClosing = true
		case s.peek() == '>':
			s.next()
		case s.eof():
			return &SyntaxError{Row: s.row, Column: s.col, Msg: "unterminated opening tag"}
		default:
			tok, err := parseAttribute(s)
			if err != nil {
				return err
			}
			attrs = append(attrs, tok)
			continue
		}
		break
	}

	// The element's Open token is emitted before its attributes, matching
	// the original library's element_opening-then-parse_attribute_list
	// order: callers see an element before what qualifies it.
	open := Token{
		Kind: Open, Name: name, Row: row, Column: col, Index: index, Length: s.pos - index,
		selfClosing: selfClosing, childrenFrom: s.pos,
	}
	if !fn(open) {
		return errAbort
	}
	for _, tok := range attrs {
		if !fn(tok) {
			return errAbort
		}
	}

	if selfClosing {
		close := Token{Kind: Close, Name: name, Row: row, Column: col, Index: s.pos, Length: 0}
		if !fn(close) {
			return errAbort
		}
		return nil
	}

	if err := p.walkSiblings(s, fn, true); err != nil {
		return err
	}

	closeRow, closeCol, closeIndex := s.row, s.col, s.pos
	s.next() // '<'
	s.next() // '/'
	closeName, err := s.parseName()
	if err != nil {
		return err
	}
	s.skipSpace()
	if s.peek() != '>' {
		return &SyntaxError{Row: s.row, Column: s.col, Msg: "expected '>' in closing tag"}
	}
	s.next()
	if closeName != name {
		return &SyntaxError{Row: closeRow, Column: closeCol, Msg: "mismatched closing tag: </" + closeName + "> for <" + name + ">"}
	}

	close := Token{Kind: Close, Name: closeName, Row: closeRow, Column: closeCol, Index: closeIndex, Length: s.pos - closeIndex}
	if !fn(close) {
		return errAbort
	}
	return nil
}
