package parser

import "github.com/deepnoodle-ai/jsfuse/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	COMMA       // a, b
	ASSIGN      // = += -= and the other compound assignments
	TERNARY     // ?:
	OR          // ||
	AND         // &&
	BITOR       // |
	BITXOR      // ^
	BITAND      // &
	EQUALS      // == != === !==
	LESSGREATER // > < in instanceof
	SHIFT       // << >> >>>
	SUM         // + or -
	PRODUCT     // * / %
	EXPONENT    // **
	PREFIX      // -X or !X
	POSTFIX     // X++
	CALL        // myFunction(X)
	INDEX       // array[index], x.y
)

// Precedence table
var precedences = map[token.Type]int{
	token.COMMA:           COMMA,
	token.ASSIGN:          ASSIGN,
	token.PLUS_EQUALS:     ASSIGN,
	token.MINUS_EQUALS:    ASSIGN,
	token.ASTERISK_EQUALS: ASSIGN,
	token.SLASH_EQUALS:    ASSIGN,
	token.MOD_EQUALS:      ASSIGN,
	token.POWER_EQUALS:    ASSIGN,
	token.AMP_EQUALS:      ASSIGN,
	token.PIPE_EQUALS:     ASSIGN,
	token.CARET_EQUALS:    ASSIGN,
	token.SHL_EQUALS:      ASSIGN,
	token.SHR_EQUALS:      ASSIGN,
	token.USHR_EQUALS:     ASSIGN,
	token.QUESTION:        TERNARY,
	token.OR:              OR,
	token.AND:             AND,
	token.PIPE:            BITOR,
	token.CARET:           BITXOR,
	token.AMPERSAND:       BITAND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.EQ_STRICT:       EQUALS,
	token.NE_STRICT:       EQUALS,
	token.LT:              LESSGREATER,
	token.LT_EQUALS:       LESSGREATER,
	token.GT:              LESSGREATER,
	token.GT_EQUALS:       LESSGREATER,
	token.IN:              LESSGREATER,
	token.INSTANCEOF:      LESSGREATER,
	token.SHL:             SHIFT,
	token.SHR:             SHIFT,
	token.USHR:            SHIFT,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.SLASH:           PRODUCT,
	token.ASTERISK:        PRODUCT,
	token.MOD:             PRODUCT,
	token.POWER:           EXPONENT,
	token.INC:             POSTFIX,
	token.DEC:             POSTFIX,
	token.LPAREN:          CALL,
	token.PERIOD:          INDEX,
	token.LBRACKET:        INDEX,
}
