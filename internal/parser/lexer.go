package parser

// charClass is the lexical class of one input byte. Every transition of the
// line state machine is keyed on it.
type charClass uint8

const (
	classOther charClass = iota
	classSpace
	classSemicolon
	classQuote
	classDigit
	classLetter
)

func classify(c byte) charClass {
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
		return classSpace
	case c == ';':
		return classSemicolon
	case c == '"':
		return classQuote
	case c >= '0' && c <= '9':
		return classDigit
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return classLetter
	default:
		return classOther
	}
}

// lexState is the inner state of the line scanner. It is crossed with the
// outer mode, which is directive mode unless a draw block is open.
type lexState uint8

const (
	stateIdle lexState = iota
	stateToken
	stateString
	stateComment
)

func (s lexState) String() string {
	switch s {
	case stateToken:
		return "token"
	case stateString:
		return "string"
	case stateComment:
		return "comment"
	default:
		return "idle"
	}
}

// tokenKind says how a draw-mode token is being read.
type tokenKind uint8

const (
	// tokenWord is a keyword candidate or a directive operand
	tokenWord tokenKind = iota
	// tokenPixel is a committed run of pixel digits
	tokenPixel
	// tokenPending is a lone hex letter that may still turn out to be a keyword
	tokenPending
)
