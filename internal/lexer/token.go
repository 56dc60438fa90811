package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers
	IDENT         // color, width, p
	CAPITAL_IDENT // LinkColor
	CLASS_IDENT   // .menu
	ID_IDENT      // #main

	// Literals
	PIXELSIZE  // 10px
	PERCENTAGE // 50%
	SCALAR     // 3
	COLOR      // #ff00ff

	// Keywords
	IF
	ELSE
	TRUE
	FALSE

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	ASSIGN // :=

	// Delimiters
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COLON     // :
	SEMICOLON // ;
	COMMA     // ,
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case CAPITAL_IDENT:
		return "CAPITAL_IDENT"
	case CLASS_IDENT:
		return "CLASS_IDENT"
	case ID_IDENT:
		return "ID_IDENT"
	case PIXELSIZE:
		return "PIXELSIZE"
	case PERCENTAGE:
		return "PERCENTAGE"
	case SCALAR:
		return "SCALAR"
	case COLOR:
		return "COLOR"
	case IF:
		return "if"
	case ELSE:
		return "else"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case ASSIGN:
		return ":="
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case COLON:
		return ":"
	case SEMICOLON:
		return ";"
	case COMMA:
		return ","
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

var keywords = map[string]TokenType{
	"if":    IF,
	"else":  ELSE,
	"TRUE":  TRUE,
	"FALSE": FALSE,
}

// LookupIdent classifies an identifier as keyword, variable-style or lower-case ident
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if len(ident) > 0 && 'A' <= ident[0] && ident[0] <= 'Z' {
		return CAPITAL_IDENT
	}
	return IDENT
}
