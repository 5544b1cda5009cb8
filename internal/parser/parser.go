// Package parser implements HPL's Pratt-style expression parser and
// recursive-descent statement parser over the token stream produced by
// internal/lexer: a prefix/infix function-table Pratt core plus
// hand-written statement productions.
package parser

import (
	"fmt"

	"github.com/hpl-lang/hpl/internal/ast"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/lexer"
	"github.com/hpl-lang/hpl/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	LOGICAL_OR
	LOGICAL_AND
	EQUALITY
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	PREFIX
	POSTFIX
)

var precedences = map[token.Kind]int{
	token.OR:      LOGICAL_OR,
	token.AND:     LOGICAL_AND,
	token.EQ:      EQUALITY,
	token.NEQ:     EQUALITY,
	token.LT:      COMPARISON,
	token.LE:      COMPARISON,
	token.GT:      COMPARISON,
	token.GE:      COMPARISON,
	token.PLUS:    ADDITIVE,
	token.MINUS:   ADDITIVE,
	token.STAR:    MULTIPLICATIVE,
	token.SLASH:   MULTIPLICATIVE,
	token.PERCENT: MULTIPLICATIVE,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into an AST.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn

	errors []*hplerr.Error
}

// New creates a Parser that reads tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.IDENT:    p.parseIdentifierOrCall,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.NOT:      p.parseUnaryExpression,
		token.MINUS:    p.parseUnaryExpression,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.PLUS:    p.parseBinaryExpression,
		token.MINUS:   p.parseBinaryExpression,
		token.STAR:    p.parseBinaryExpression,
		token.SLASH:   p.parseBinaryExpression,
		token.PERCENT: p.parseBinaryExpression,
		token.EQ:      p.parseBinaryExpression,
		token.NEQ:     p.parseBinaryExpression,
		token.LT:      p.parseBinaryExpression,
		token.LE:      p.parseBinaryExpression,
		token.GT:      p.parseBinaryExpression,
		token.GE:      p.parseBinaryExpression,
		token.AND:     p.parseBinaryExpression,
		token.OR:      p.parseBinaryExpression,
	}

	// prime curTok/peekTok; ParseProgram skips any leading indentation.
	p.advance()
	p.advance()
	return p
}

// Errors returns syntactic errors accumulated while parsing.
func (p *Parser) Errors() []*hplerr.Error { return p.errors }

func (p *Parser) addErrorf(format string, args ...any) {
	p.errors = append(p.errors, hplerr.New(hplerr.Syntactic, p.curTok.Position, format, args...))
}

func (p *Parser) advance() {
	p.curTok = p.peekTok
	p.peekTok = p.l.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.advance()
		return true
	}
	p.addErrorf("expected %s, got %s at %s", k, p.peekTok.Kind, p.peekTok.Position)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekTok.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curTok.Kind]; ok {
		return pr
	}
	return LOWEST
}

// skipIndentNoise consumes any synthetic INDENT/DEDENT tokens and `;`
// separators at the current position; used where the grammar doesn't care about them
// (e.g. inside an expression or between statements).
func (p *Parser) skipIndentNoise() {
	for p.curIs(token.INDENT) || p.curIs(token.DEDENT) || p.curIs(token.SEMI) {
		p.advance()
	}
}

// ParseProgram parses a full statement sequence until EOF.
func (p *Parser) ParseProgram() *ast.Block {
	block := &ast.Block{Token: p.curTok}
	p.skipIndentNoise()
	for !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipIndentNoise()
	}
	return block
}

// ---- statements ----

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Kind {
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.curTok
		p.advance()
		return &ast.Break{Token: tok}
	case token.CONTINUE:
		tok := p.curTok
		p.advance()
		return &ast.Continue{Token: tok}
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.TRY:
		return p.parseTryCatch()
	case token.ECHO:
		return p.parseEcho()
	case token.IMPORT:
		return p.parseImport()
	case token.IDENT:
		return p.parseIdentifierStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.curTok
	p.advance()
	stmt := &ast.Return{Token: tok}
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) && !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		stmt.Value = p.parseExpression(LOWEST)
		p.advance()
	}
	return stmt
}

func (p *Parser) parseEcho() ast.Statement {
	tok := p.curTok
	p.advance()
	value := p.parseExpression(LOWEST)
	p.advance()
	return &ast.Echo{Token: tok, Value: value}
}

func (p *Parser) parseImport() ast.Statement {
	tok := p.curTok
	p.advance()
	if !p.curIs(token.IDENT) {
		p.addErrorf("expected module name after import, got %s", p.curTok.Kind)
		return &ast.ImportStatement{Token: tok}
	}
	module := p.curTok.Value
	stmt := &ast.ImportStatement{Token: tok, Module: module}
	if p.peekIs(token.AS) {
		p.advance()
		if !p.expect(token.IDENT) {
			return stmt
		}
		stmt.Alias = p.curTok.Value
	}
	p.advance()
	return stmt
}

// parseIdentifierStatement handles `ident = expr`, `ident.path = expr`,
// `ident[idx] = expr`, and bare expression statements (including calls and
// `x++`) that happen to start with an identifier.
func (p *Parser) parseIdentifierStatement() ast.Statement {
	startTok := p.curTok
	expr := p.parseExpression(LOWEST)

	if p.peekIs(token.ASSIGN) {
		tok := p.peekTok
		p.advance() // consume '='
		p.advance() // move to RHS
		value := p.parseExpression(LOWEST)
		p.advance()

		assign := &ast.Assign{Token: tok, Value: value}
		switch target := expr.(type) {
		case *ast.VariableReference:
			assign.Kind = ast.TargetName
			assign.Name = target.Name
		case *ast.PropertyAccess:
			assign.Kind = ast.TargetProperty
			assign.PropertyReceiver = target.Receiver
			assign.PropertyName = target.Name
		case *ast.ArrayIndex:
			assign.Kind = ast.TargetIndex
			assign.IndexArray = target.Array
			assign.IndexExpr = target.Index
		default:
			p.addErrorf("invalid assignment target at %s", startTok.Position)
		}
		return assign
	}

	if inc, ok := expr.(*ast.PostfixIncrement); ok {
		p.advance()
		return &ast.IncrementStatement{Token: startTok, Target: inc.Target}
	}

	p.advance()
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curTok
	expr := p.parseExpression(LOWEST)
	p.advance()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.curTok
	if !p.expect(token.LPAREN) {
		return &ast.If{Token: tok}
	}
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return &ast.If{Token: tok, Condition: cond}
	}
	p.advance()

	consequence := p.parseBlock()
	node := &ast.If{Token: tok, Condition: cond, Consequence: consequence}

	p.skipIndentNoise()
	if p.curIs(token.ELSE) {
		p.advance()
		node.Alternative = p.parseBlock()
	}
	return node
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.curTok
	if !p.expect(token.LPAREN) {
		return &ast.For{Token: tok}
	}
	p.advance()

	node := &ast.For{Token: tok}
	if !p.curIs(token.SEMI) {
		node.Init = p.parseStatement()
	} else {
		p.advance()
	}
	p.skipIndentNoise()

	if !p.curIs(token.SEMI) {
		node.Cond = p.parseExpression(LOWEST)
		p.advance()
	}
	if p.curIs(token.SEMI) {
		p.advance()
	}

	if !p.curIs(token.RPAREN) {
		node.Step = p.parseStatement()
	}
	if p.curIs(token.RPAREN) {
		p.advance()
	} else {
		p.addErrorf("expected ) to close for-clause, got %s at %s", p.curTok.Kind, p.curTok.Position)
	}

	node.Body = p.parseBlock()
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.curTok
	if !p.expect(token.LPAREN) {
		return &ast.While{Token: tok}
	}
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return &ast.While{Token: tok, Condition: cond}
	}
	p.advance()
	if p.curIs(token.COLON) {
		p.advance()
	}
	body := p.parseBlock()
	return &ast.While{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseTryCatch() ast.Statement {
	tok := p.curTok
	p.advance()
	if p.curIs(token.COLON) {
		p.advance()
	}
	tryBlock := p.parseBlock()

	p.skipIndentNoise()
	node := &ast.TryCatch{Token: tok, Try: tryBlock}
	if !p.curIs(token.CATCH) {
		p.addErrorf("expected catch, got %s at %s", p.curTok.Kind, p.curTok.Position)
		return node
	}
	if !p.expect(token.LPAREN) {
		return node
	}
	if !p.expect(token.IDENT) {
		return node
	}
	node.CatchName = p.curTok.Value
	if !p.expect(token.RPAREN) {
		return node
	}
	p.advance()
	if p.curIs(token.COLON) {
		p.advance()
	}
	node.Catch = p.parseBlock()
	return node
}

// ---- block syntaxes: brace, colon, and indent dispatch ----

func (p *Parser) parseBlock() *ast.Block {
	tok := p.curTok
	block := &ast.Block{Token: tok}

	switch {
	case p.curIs(token.INDENT):
		p.advance()
		for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
			p.skipIndentNoise()
			if p.curIs(token.DEDENT) || p.curIs(token.EOF) {
				break
			}
			if stmt := p.parseStatement(); stmt != nil {
				block.Statements = append(block.Statements, stmt)
			}
		}
		if p.curIs(token.DEDENT) {
			p.advance()
		}
		return block

	case p.curIs(token.LBRACE):
		p.advance()
		if p.curIs(token.INDENT) {
			p.advance()
		}
		for !p.curIs(token.RBRACE) && !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
			p.skipIndentNoise()
			if p.curIs(token.RBRACE) || p.curIs(token.DEDENT) || p.curIs(token.EOF) {
				break
			}
			if stmt := p.parseStatement(); stmt != nil {
				block.Statements = append(block.Statements, stmt)
			}
		}
		if p.curIs(token.DEDENT) {
			p.advance()
		}
		if p.curIs(token.RBRACE) {
			p.advance()
		} else {
			p.addErrorf("expected }, got %s at %s", p.curTok.Kind, p.curTok.Position)
		}
		return block

	case p.curIs(token.COLON):
		p.advance()
		if p.curIs(token.INDENT) {
			p.advance()
			for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
				p.skipIndentNoise()
				if p.curIs(token.DEDENT) || p.curIs(token.EOF) {
					break
				}
				if stmt := p.parseStatement(); stmt != nil {
					block.Statements = append(block.Statements, stmt)
				}
			}
			if p.curIs(token.DEDENT) {
				p.advance()
			}
			return block
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		return block

	default:
		p.addErrorf("expected block ({, :, or indent), got %s at %s", p.curTok.Kind, p.curTok.Position)
		return block
	}
}

// ---- expressions: Pratt core ----

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curTok.Kind]
	if !ok {
		p.addErrorf("no prefix parse function for %s at %s", p.curTok.Kind, p.curTok.Position)
		return nil
	}
	left := prefix()
	left = p.parsePostfixChain(left)

	for !p.peekIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekTok.Kind]
		if !ok {
			return left
		}
		p.advance()
		left = infix(left)
	}

	return left
}

// parsePostfixChain admits any sequence of `.name`, `.name(args)`,
// `[expr]`, `++` applied to a primary.
func (p *Parser) parsePostfixChain(left ast.Expression) ast.Expression {
	for {
		switch {
		case p.peekIs(token.DOT):
			p.advance() // consume '.'
			if !p.expect(token.IDENT) {
				return left
			}
			name := p.curTok.Value
			dotTok := p.curTok
			if p.peekIs(token.LPAREN) {
				p.advance()
				args := p.parseCallArguments()
				left = &ast.MethodCall{Token: dotTok, Receiver: left, Name: name, Arguments: args}
			} else {
				left = &ast.PropertyAccess{Token: dotTok, Receiver: left, Name: name}
			}
		case p.peekIs(token.LBRACKET):
			tok := p.peekTok
			p.advance()
			p.advance()
			idx := p.parseExpression(LOWEST)
			if !p.expect(token.RBRACKET) {
				return left
			}
			left = &ast.ArrayIndex{Token: tok, Array: left, Index: idx}
		case p.peekIs(token.INCR):
			tok := p.peekTok
			p.advance()
			left = &ast.PostfixIncrement{Token: tok, Target: left}
		default:
			return left
		}
	}
}

func (p *Parser) parseCallArguments() []ast.Expression {
	var args []ast.Expression
	p.advance() // consume '('
	if p.curIs(token.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expect(token.RPAREN) {
		return args
	}
	return args
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	var v int64
	if _, err := fmt.Sscanf(p.curTok.Value, "%d", &v); err != nil {
		p.addErrorf("invalid integer literal %q at %s", p.curTok.Value, p.curTok.Position)
	}
	return &ast.IntegerLiteral{Token: p.curTok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	var v float64
	if _, err := fmt.Sscanf(p.curTok.Value, "%g", &v); err != nil {
		p.addErrorf("invalid float literal %q at %s", p.curTok.Value, p.curTok.Position)
	}
	return &ast.FloatLiteral{Token: p.curTok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curTok, Value: p.curTok.Value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curTok, Value: p.curTok.Kind == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curTok}
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.curTok
	if p.peekIs(token.LPAREN) {
		p.advance()
		args := p.parseCallArguments()
		return &ast.FunctionCall{Token: tok, Name: tok.Value, Arguments: args}
	}
	return &ast.VariableReference{Token: tok, Name: tok.Value}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // consume '('
	expr := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curTok
	var elements []ast.Expression
	if p.peekIs(token.RBRACKET) {
		p.advance()
		return &ast.ArrayLiteral{Token: tok, Elements: elements}
	}
	p.advance()
	elements = append(elements, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		elements = append(elements, p.parseExpression(LOWEST))
	}
	if !p.expect(token.RBRACKET) {
		return &ast.ArrayLiteral{Token: tok, Elements: elements}
	}
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curTok
	op := tok.Value
	p.advance()
	right := p.parseExpression(PREFIX)

	if tok.Kind == token.MINUS {
		// unary -x is rewritten as 0 - x.
		return &ast.BinaryOp{
			Token:    tok,
			Left:     &ast.IntegerLiteral{Token: token.Token{Kind: token.INT, Value: "0", Position: tok.Position}, Value: 0},
			Operator: "-",
			Right:    right,
		}
	}
	return &ast.UnaryOp{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curTok
	op := tok.Value
	precedence := p.curPrecedence()
	p.advance()
	right := p.parseExpression(precedence)
	return &ast.BinaryOp{Token: tok, Left: left, Operator: op, Right: right}
}
