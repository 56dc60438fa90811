package parser

import (
	"strconv"
	"strings"

	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/diagnostic"
	"github.com/lhaig/icss/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
		tree:   ast.NewTree(),
	}
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Stylesheet tree
func (p *Parser) Parse() *ast.Tree {
	sheet := p.tree.Stylesheet()

	for !p.check(lexer.EOF) {
		startPos := p.pos
		var id ast.NodeID = ast.NoNode

		switch p.current().Type {
		case lexer.CAPITAL_IDENT:
			id = p.parseVariableAssignment()
		case lexer.IF:
			// accepted here so the checker can report it
			id = p.parseIfClause()
		case lexer.IDENT:
			if p.peek().Type == lexer.ASSIGN {
				id = p.parseVariableAssignment()
			} else {
				id = p.parseStylerule()
			}
		case lexer.CLASS_IDENT, lexer.ID_IDENT:
			id = p.parseStylerule()
		default:
			p.errorf(p.current(), "unexpected %s at top level", describe(p.current()))
			p.synchronize()
		}

		if id != ast.NoNode {
			sheet.Body = append(sheet.Body, id)
		}
		if p.pos == startPos {
			p.advance() // ensure forward progress to avoid infinite loop
		}
	}
	return p.tree
}

// parseStylerule parses: selector (',' selector)* '{' body '}'
func (p *Parser) parseStylerule() ast.NodeID {
	tok := p.current()
	rule := &ast.Stylerule{Meta: ast.Meta{Line: tok.Line, Column: tok.Column}}

	rule.Selectors = append(rule.Selectors, p.parseSelector())
	for p.match(lexer.COMMA) {
		rule.Selectors = append(rule.Selectors, p.parseSelector())
	}

	rule.Body = p.parseBody()
	return p.tree.Add(rule)
}

// parseSelector parses a tag, .class or #id selector
func (p *Parser) parseSelector() ast.NodeID {
	tok := p.current()
	switch tok.Type {
	case lexer.IDENT, lexer.CLASS_IDENT, lexer.ID_IDENT:
		p.advance()
	default:
		p.errorf(tok, "expected selector, got %s", describe(tok))
	}
	return p.tree.Add(ast.NewSelector(strings.ToLower(tok.Literal), tok.Line, tok.Column))
}

// parseBody parses: '{' (declaration | ifclause | assignment)* '}'
func (p *Parser) parseBody() []ast.NodeID {
	p.expect(lexer.LBRACE)

	var body []ast.NodeID
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		id := p.parseBodyItem()
		if id != ast.NoNode {
			body = append(body, id)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return body
}

func (p *Parser) parseBodyItem() ast.NodeID {
	tok := p.current()
	switch {
	case tok.Type == lexer.IF:
		return p.parseIfClause()
	case (tok.Type == lexer.IDENT || tok.Type == lexer.CAPITAL_IDENT) && p.peek().Type == lexer.ASSIGN:
		return p.parseVariableAssignment()
	case tok.Type == lexer.IDENT, tok.Type == lexer.CAPITAL_IDENT && p.peek().Type == lexer.COLON:
		return p.parseDeclaration()
	default:
		p.errorf(tok, "unexpected %s in rule body", describe(tok))
		p.synchronize()
		return ast.NoNode
	}
}

// parseDeclaration parses: property ':' expression ';'
// Property names are matched case-insensitively later, so `Width:` is accepted too.
func (p *Parser) parseDeclaration() ast.NodeID {
	tok := p.advance()
	prop := p.tree.Add(&ast.PropertyName{
		Meta: ast.Meta{Line: tok.Line, Column: tok.Column},
		Name: tok.Literal,
	})
	p.expect(lexer.COLON)
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	return p.tree.Add(&ast.Declaration{
		Meta:     ast.Meta{Line: tok.Line, Column: tok.Column},
		Property: prop,
		Expr:     expr,
	})
}

// parseVariableAssignment parses: Name ':=' expression ';'
func (p *Parser) parseVariableAssignment() ast.NodeID {
	tok := p.advance()
	name := p.tree.Add(&ast.VariableReference{
		Meta: ast.Meta{Line: tok.Line, Column: tok.Column},
		Name: tok.Literal,
	})
	p.expect(lexer.ASSIGN)
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	return p.tree.Add(&ast.VariableAssignment{
		Meta: ast.Meta{Line: tok.Line, Column: tok.Column},
		Name: name,
		Expr: expr,
	})
}

// parseIfClause parses: 'if' '[' expression ']' body ('else' body)?
func (p *Parser) parseIfClause() ast.NodeID {
	tok := p.expect(lexer.IF)
	p.expect(lexer.LBRACKET)
	cond := p.parseExpression()
	p.expect(lexer.RBRACKET)
	body := p.parseBody()

	elseID := ast.NoNode
	if p.check(lexer.ELSE) {
		elseTok := p.advance()
		elseBody := p.parseBody()
		elseID = p.tree.Add(&ast.ElseClause{
			Meta: ast.Meta{Line: elseTok.Line, Column: elseTok.Column},
			Body: elseBody,
		})
	}

	return p.tree.Add(&ast.IfClause{
		Meta: ast.Meta{Line: tok.Line, Column: tok.Column},
		Cond: cond,
		Body: body,
		Else: elseID,
	})
}

// parseExpression parses additive expressions, left associative
func (p *Parser) parseExpression() ast.NodeID {
	left := p.parseTerm()

	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		op := p.advance()
		right := p.parseTerm()
		meta := ast.Meta{Line: op.Line, Column: op.Column}
		if op.Type == lexer.PLUS {
			left = p.tree.Add(&ast.AddOperation{Meta: meta, LHS: left, RHS: right})
		} else {
			left = p.tree.Add(&ast.SubtractOperation{Meta: meta, LHS: left, RHS: right})
		}
	}
	return left
}

// parseTerm parses multiplicative expressions, left associative
func (p *Parser) parseTerm() ast.NodeID {
	left := p.parseAtom()

	for p.check(lexer.STAR) {
		op := p.advance()
		right := p.parseAtom()
		left = p.tree.Add(&ast.MultiplyOperation{
			Meta: ast.Meta{Line: op.Line, Column: op.Column},
			LHS:  left,
			RHS:  right,
		})
	}
	return left
}

func (p *Parser) parseAtom() ast.NodeID {
	tok := p.current()
	meta := ast.Meta{Line: tok.Line, Column: tok.Column}

	switch tok.Type {
	case lexer.PIXELSIZE:
		p.advance()
		return p.tree.Add(&ast.PixelLiteral{Meta: meta, Value: p.number(tok, "px")})
	case lexer.PERCENTAGE:
		p.advance()
		return p.tree.Add(&ast.PercentageLiteral{Meta: meta, Value: p.number(tok, "%")})
	case lexer.SCALAR:
		p.advance()
		return p.tree.Add(&ast.ScalarLiteral{Meta: meta, Value: p.number(tok, "")})
	case lexer.COLOR:
		p.advance()
		return p.tree.Add(&ast.ColorLiteral{Meta: meta, Value: tok.Literal})
	case lexer.TRUE:
		p.advance()
		return p.tree.Add(&ast.BoolLiteral{Meta: meta, Value: true})
	case lexer.FALSE:
		p.advance()
		return p.tree.Add(&ast.BoolLiteral{Meta: meta, Value: false})
	case lexer.IDENT, lexer.CAPITAL_IDENT:
		p.advance()
		switch {
		case strings.EqualFold(tok.Literal, "true"):
			return p.tree.Add(&ast.BoolLiteral{Meta: meta, Value: true})
		case strings.EqualFold(tok.Literal, "false"):
			return p.tree.Add(&ast.BoolLiteral{Meta: meta, Value: false})
		}
		return p.tree.Add(&ast.VariableReference{Meta: meta, Name: tok.Literal})
	default:
		p.errorf(tok, "unexpected %s in expression", describe(tok))
		if tok.Type != lexer.SEMICOLON && tok.Type != lexer.RBRACKET && tok.Type != lexer.RBRACE {
			p.advance()
		}
		return p.tree.Add(&ast.VariableReference{Meta: meta, Name: "<error>"})
	}
}

// number converts the numeric part of a literal token
func (p *Parser) number(tok lexer.Token, unit string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(tok.Literal, unit))
	if err != nil {
		p.errorf(tok, "invalid number '%s'", tok.Literal)
		return 0
	}
	return n
}
