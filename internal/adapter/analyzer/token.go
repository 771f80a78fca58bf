package analyzer

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	KindNewline Kind = iota

	// Payload-bearing kinds
	KindIdentifier
	KindNumber
	KindChar
	KindString       // whole string literal on one line
	KindStringStart  // first fragment of a split literal
	KindStringMiddle // interior fragment
	KindStringEnd    // last fragment
	KindLineComment
	KindBlockComment  // whole block comment on one line
	KindCommentStart  // first line of a multi-line block comment
	KindCommentMiddle // interior line
	KindCommentEnd    // last line
	KindPragma

	// Punctuation and operators
	KindLBrace       // {
	KindRBrace       // }
	KindLParen       // (
	KindRParen       // )
	KindLBracket     // [
	KindRBracket     // ]
	KindLess         // <
	KindGreater      // >
	KindSemicolon    // ;
	KindComma        // ,
	KindDot          // .
	KindColon        // :
	KindQuestion     // ?
	KindAssign       // =
	KindArrow        // =>
	KindEqual        // ==
	KindLessEqual    // <=
	KindGreaterEqual // >=
	KindAndAnd       // &&
	KindOrOr         // ||
	KindPlusPlus     // ++
	KindMinusMinus   // --
	KindPlus         // +
	KindMinus        // -
	KindStar         // *
	KindSlash        // /
	KindPercent      // %
	KindBang         // !
	KindTilde        // ~
	KindCaret        // ^

	kindKeywordStart
	KindAbstract
	KindAs
	KindBase
	KindBool
	KindBreak
	KindByte
	KindCase
	KindCatch
	KindCharKeyword
	KindChecked
	KindClass
	KindConst
	KindContinue
	KindDecimal
	KindDefault
	KindDelegate
	KindDo
	KindDouble
	KindElse
	KindEnum
	KindEvent
	KindExplicit
	KindExtern
	KindFalse
	KindFinally
	KindFixed
	KindFloat
	KindFor
	KindForeach
	KindGoto
	KindIf
	KindImplicit
	KindIn
	KindInt
	KindInterface
	KindInternal
	KindIs
	KindLock
	KindLong
	KindNamespace
	KindNew
	KindNull
	KindObject
	KindOperator
	KindOut
	KindOverride
	KindParams
	KindPrivate
	KindProtected
	KindPublic
	KindReadonly
	KindRef
	KindReturn
	KindSbyte
	KindSealed
	KindShort
	KindSizeof
	KindStackalloc
	KindStatic
	KindStringKeyword
	KindStruct
	KindSwitch
	KindThis
	KindThrow
	KindTrue
	KindTry
	KindTypeof
	KindUint
	KindUlong
	KindUnchecked
	KindUnsafe
	KindUshort
	KindUsing
	KindVirtual
	KindVoid
	KindVolatile
	KindWhile
	kindKeywordEnd
)

var punctuation = map[Kind]string{
	KindNewline:      "\n",
	KindLBrace:       "{",
	KindRBrace:       "}",
	KindLParen:       "(",
	KindRParen:       ")",
	KindLBracket:     "[",
	KindRBracket:     "]",
	KindLess:         "<",
	KindGreater:      ">",
	KindSemicolon:    ";",
	KindComma:        ",",
	KindDot:          ".",
	KindColon:        ":",
	KindQuestion:     "?",
	KindAssign:       "=",
	KindArrow:        "=>",
	KindEqual:        "==",
	KindLessEqual:    "<=",
	KindGreaterEqual: ">=",
	KindAndAnd:       "&&",
	KindOrOr:         "||",
	KindPlusPlus:     "++",
	KindMinusMinus:   "--",
	KindPlus:         "+",
	KindMinus:        "-",
	KindStar:         "*",
	KindSlash:        "/",
	KindPercent:      "%",
	KindBang:         "!",
	KindTilde:        "~",
	KindCaret:        "^",
}

// keywords maps every reserved C# keyword to its kind. Contextual keywords
// (var, async, where, record, ...) are plain identifiers.
var keywords = map[string]Kind{
	"abstract":   KindAbstract,
	"as":         KindAs,
	"base":       KindBase,
	"bool":       KindBool,
	"break":      KindBreak,
	"byte":       KindByte,
	"case":       KindCase,
	"catch":      KindCatch,
	"char":       KindCharKeyword,
	"checked":    KindChecked,
	"class":      KindClass,
	"const":      KindConst,
	"continue":   KindContinue,
	"decimal":    KindDecimal,
	"default":    KindDefault,
	"delegate":   KindDelegate,
	"do":         KindDo,
	"double":     KindDouble,
	"else":       KindElse,
	"enum":       KindEnum,
	"event":      KindEvent,
	"explicit":   KindExplicit,
	"extern":     KindExtern,
	"false":      KindFalse,
	"finally":    KindFinally,
	"fixed":      KindFixed,
	"float":      KindFloat,
	"for":        KindFor,
	"foreach":    KindForeach,
	"goto":       KindGoto,
	"if":         KindIf,
	"implicit":   KindImplicit,
	"in":         KindIn,
	"int":        KindInt,
	"interface":  KindInterface,
	"internal":   KindInternal,
	"is":         KindIs,
	"lock":       KindLock,
	"long":       KindLong,
	"namespace":  KindNamespace,
	"new":        KindNew,
	"null":       KindNull,
	"object":     KindObject,
	"operator":   KindOperator,
	"out":        KindOut,
	"override":   KindOverride,
	"params":     KindParams,
	"private":    KindPrivate,
	"protected":  KindProtected,
	"public":     KindPublic,
	"readonly":   KindReadonly,
	"ref":        KindRef,
	"return":     KindReturn,
	"sbyte":      KindSbyte,
	"sealed":     KindSealed,
	"short":      KindShort,
	"sizeof":     KindSizeof,
	"stackalloc": KindStackalloc,
	"static":     KindStatic,
	"string":     KindStringKeyword,
	"struct":     KindStruct,
	"switch":     KindSwitch,
	"this":       KindThis,
	"throw":      KindThrow,
	"true":       KindTrue,
	"try":        KindTry,
	"typeof":     KindTypeof,
	"uint":       KindUint,
	"ulong":      KindUlong,
	"unchecked":  KindUnchecked,
	"unsafe":     KindUnsafe,
	"ushort":     KindUshort,
	"using":      KindUsing,
	"virtual":    KindVirtual,
	"void":       KindVoid,
	"volatile":   KindVolatile,
	"while":      KindWhile,
}

var keywordSpelling = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for word, kind := range keywords {
		m[kind] = word
	}
	return m
}()

// LookupKeyword returns the keyword kind for word, or KindIdentifier.
func LookupKeyword(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return KindIdentifier
}

// IsReservedKeyword reports whether word needs an '@' prefix to be used as
// an identifier.
func IsReservedKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

func (k Kind) String() string {
	if s, ok := punctuation[k]; ok {
		if k == KindNewline {
			return "newline"
		}
		return s
	}
	if s, ok := keywordSpelling[k]; ok {
		return s
	}
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindStringStart:
		return "string-start"
	case KindStringMiddle:
		return "string-middle"
	case KindStringEnd:
		return "string-end"
	case KindLineComment:
		return "line-comment"
	case KindBlockComment:
		return "block-comment"
	case KindCommentStart:
		return "comment-start"
	case KindCommentMiddle:
		return "comment-middle"
	case KindCommentEnd:
		return "comment-end"
	case KindPragma:
		return "pragma"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsKeyword reports whether k is a reserved keyword kind.
func (k Kind) IsKeyword() bool {
	return k > kindKeywordStart && k < kindKeywordEnd
}

// IsComment reports whether k is any comment fragment.
func (k Kind) IsComment() bool {
	switch k {
	case KindLineComment, KindBlockComment, KindCommentStart, KindCommentMiddle, KindCommentEnd:
		return true
	}
	return false
}

// IsSkippable reports whether k carries no code: newlines and comments.
func (k Kind) IsSkippable() bool {
	return k == KindNewline || k.IsComment()
}

// IsBuiltinType reports whether k is a keyword naming a predefined type.
func (k Kind) IsBuiltinType() bool {
	switch k {
	case KindBool, KindByte, KindCharKeyword, KindDecimal, KindDouble, KindFloat,
		KindInt, KindLong, KindObject, KindSbyte, KindShort, KindStringKeyword,
		KindUint, KindUlong, KindUshort, KindVoid:
		return true
	}
	return false
}

// IsTypeKeyword reports whether k introduces a type declaration.
func (k Kind) IsTypeKeyword() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum:
		return true
	}
	return false
}

// IsModifier reports whether k is a declaration modifier.
func (k Kind) IsModifier() bool {
	switch k {
	case KindPublic, KindPrivate, KindProtected, KindInternal, KindStatic,
		KindReadonly, KindConst, KindVirtual, KindOverride, KindAbstract,
		KindSealed, KindExtern, KindUnsafe, KindVolatile, KindNew, KindEvent,
		KindExplicit, KindImplicit, KindDelegate, KindRef:
		return true
	}
	return false
}

// Token is a single lexical unit. Text is set only for payload-bearing kinds.
type Token struct {
	Kind   Kind
	Line   int
	Column int
	Text   string
}

// Spelling returns the source text the token stands for.
func (t Token) Spelling() string {
	if t.Text != "" {
		return t.Text
	}
	if s, ok := punctuation[t.Kind]; ok {
		return s
	}
	if s, ok := keywordSpelling[t.Kind]; ok {
		return s
	}
	return ""
}

// Is reports whether t is an identifier spelled word.
func (t Token) Is(word string) bool {
	return t.Kind == KindIdentifier && t.Text == word
}

func (t Token) String() string {
	if t.Kind == KindNewline {
		return fmt.Sprintf("%d:%d newline", t.Line, t.Column)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Spelling())
}

// FormatTokens renders tokens one per line; used in test failure output.
func FormatTokens(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
