package lexer

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Protocol-Lattice/gqlfront/gqlerror"
	"github.com/Protocol-Lattice/gqlfront/source"
	"github.com/Protocol-Lattice/gqlfront/token"
)

// Lexer tokenizes GraphQL source code one token at a time.
// It only remembers where the previous token ended; each call to NextToken
// resumes scanning from there through Lex.
type Lexer struct {
	src *source.Source // The source being tokenized
	pos int            // End offset of the previous token
}

// New creates a new Lexer for the given source.
func New(src *source.Source) *Lexer {
	return &Lexer{src: src}
}

// Source returns the source the lexer reads from.
func (l *Lexer) Source() *source.Source {
	return l.src
}

// NextToken returns the next token from the input.
// Once the end is reached every further call returns an EOF token.
func (l *Lexer) NextToken() (token.Token, error) {
	tok, err := Lex(l.src, l.pos)
	if err != nil {
		return tok, err
	}
	l.pos = tok.End
	return tok, nil
}

// Lex returns the first token at or after start in src.
// Past the end of input it returns an EOF token spanning [len, len).
func Lex(src *source.Source, start int) (token.Token, error) {
	body := src.Body
	pos := skipIgnored(body, start)
	if pos >= len(body) {
		return token.Token{Kind: token.EOF, Start: len(body), End: len(body)}, nil
	}

	r, _ := utf8.DecodeRuneInString(body[pos:])
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return token.Token{}, gqlerror.Errorf(src, pos, "Invalid character \"%s\".", gqlerror.Printable(r))
	}

	switch r {
	case '!':
		return punct(token.BANG, pos, 1), nil
	case '$':
		return punct(token.DOLLAR, pos, 1), nil
	case '(':
		return punct(token.PAREN_L, pos, 1), nil
	case ')':
		return punct(token.PAREN_R, pos, 1), nil
	case '.':
		if strings.HasPrefix(body[pos:], "...") {
			return punct(token.SPREAD, pos, 3), nil
		}
	case ':':
		return punct(token.COLON, pos, 1), nil
	case '=':
		return punct(token.EQUALS, pos, 1), nil
	case '@':
		return punct(token.AT, pos, 1), nil
	case '[':
		return punct(token.BRACKET_L, pos, 1), nil
	case ']':
		return punct(token.BRACKET_R, pos, 1), nil
	case '{':
		return punct(token.BRACE_L, pos, 1), nil
	case '|':
		return punct(token.PIPE, pos, 1), nil
	case '}':
		return punct(token.BRACE_R, pos, 1), nil
	case '"':
		return readString(src, pos)
	}

	if isNameStart(r) {
		return readName(body, pos), nil
	}
	if r == '-' || isDigit(r) {
		return readNumber(src, pos)
	}

	return token.Token{}, gqlerror.Errorf(src, pos, "Unexpected character \"%s\".", gqlerror.Printable(r))
}

// punct builds a fixed-width punctuation token.
func punct(kind token.Kind, pos, width int) token.Token {
	return token.Token{Kind: kind, Start: pos, End: pos + width}
}

// skipIgnored advances past whitespace, commas, the byte order mark and
// comments, returning the offset of the next significant character.
func skipIgnored(body string, pos int) int {
	for pos < len(body) {
		r, size := utf8.DecodeRuneInString(body[pos:])
		switch r {
		case '\uFEFF', '\t', ' ', ',', '\n', '\r':
			pos += size
		case '#':
			pos = skipComment(body, pos+1)
		default:
			return pos
		}
	}
	return pos
}

// skipComment advances to the end of the line, stopping early at a control
// character so that it is reported by the caller.
func skipComment(body string, pos int) int {
	for pos < len(body) {
		r, size := utf8.DecodeRuneInString(body[pos:])
		if r < 0x20 && r != '\t' {
			return pos
		}
		pos += size
	}
	return pos
}

// readName reads a name token: [_A-Za-z][_0-9A-Za-z]*.
func readName(body string, start int) token.Token {
	pos := start + 1
	for pos < len(body) && isNameContinue(rune(body[pos])) {
		pos++
	}
	return token.Token{
		Kind:  token.NAME,
		Start: start,
		End:   pos,
		Value: token.Name(body[start:pos]),
	}
}

// readNumber reads an Int or Float token:
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func readNumber(src *source.Source, start int) (token.Token, error) {
	body := src.Body
	pos := start
	isFloat := false

	if peek(body, pos) == '-' {
		pos++
	}

	if peek(body, pos) == '0' {
		pos++
		if isDigit(peek(body, pos)) {
			return token.Token{}, gqlerror.Errorf(src, pos,
				"Invalid number, unexpected digit after 0: \"%c\".", body[pos])
		}
	} else {
		var err error
		if pos, err = readDigits(src, pos); err != nil {
			return token.Token{}, err
		}
	}

	if peek(body, pos) == '.' {
		isFloat = true
		var err error
		if pos, err = readDigits(src, pos+1); err != nil {
			return token.Token{}, err
		}
	}

	if c := peek(body, pos); c == 'e' || c == 'E' {
		isFloat = true
		pos++
		if c := peek(body, pos); c == '+' || c == '-' {
			pos++
		}
		var err error
		if pos, err = readDigits(src, pos); err != nil {
			return token.Token{}, err
		}
	}

	text := body[start:pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, gqlerror.Errorf(src, start, "Float literal out of range: %q.", text)
		}
		return token.Token{Kind: token.FLOAT, Start: start, End: pos, Value: token.Float(f)}, nil
	}

	value, err := intValue(text)
	if err != nil {
		return token.Token{}, gqlerror.Errorf(src, start, "Integer literal out of range: %q.", text)
	}
	return token.Token{Kind: token.INT, Start: start, End: pos, Value: value}, nil
}

// intValue picks the narrowest integer payload that holds text.
func intValue(text string) (token.Value, error) {
	if v, err := strconv.ParseInt(text, 10, 32); err == nil {
		return token.Int32(v), nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return token.Int64(v), nil
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return token.Uint64(v), nil
}

// readDigits consumes one or more digits starting at pos.
func readDigits(src *source.Source, pos int) (int, error) {
	body := src.Body
	if !isDigit(peek(body, pos)) {
		return pos, gqlerror.Errorf(src, pos,
			"Invalid number, expected digit but got: %s.", describeAt(body, pos))
	}
	for isDigit(peek(body, pos)) {
		pos++
	}
	return pos, nil
}

// readString reads a double-quoted string, decoding escape sequences.
func readString(src *source.Source, start int) (token.Token, error) {
	body := src.Body
	pos := start + 1
	chunkStart := pos
	var value strings.Builder

	for pos < len(body) {
		r, size := utf8.DecodeRuneInString(body[pos:])

		switch {
		case r == '"':
			value.WriteString(body[chunkStart:pos])
			return token.Token{
				Kind:  token.STRING,
				Start: start,
				End:   pos + 1,
				Value: token.String(value.String()),
			}, nil
		case r == '\n' || r == '\r':
			return token.Token{}, gqlerror.NewSyntaxError(src, pos, "Unterminated string.")
		case r < 0x20 && r != '\t':
			return token.Token{}, gqlerror.Errorf(src, pos,
				"Invalid character within String: \"%s\".", gqlerror.Printable(r))
		case r == '\\':
			value.WriteString(body[chunkStart:pos])
			next, err := readEscape(src, pos, &value)
			if err != nil {
				return token.Token{}, err
			}
			pos = next
			chunkStart = pos
		default:
			pos += size
		}
	}
	return token.Token{}, gqlerror.NewSyntaxError(src, pos, "Unterminated string.")
}

// readEscape decodes the escape sequence whose backslash sits at pos and
// returns the offset just past it.
func readEscape(src *source.Source, pos int, out *strings.Builder) (int, error) {
	body := src.Body
	if pos+1 >= len(body) {
		return pos, gqlerror.NewSyntaxError(src, len(body), "Unterminated string.")
	}

	switch body[pos+1] {
	case '"':
		out.WriteByte('"')
	case '/':
		out.WriteByte('/')
	case '\\':
		out.WriteByte('\\')
	case 'b':
		out.WriteByte('\b')
	case 'f':
		out.WriteByte('\f')
	case 'n':
		out.WriteByte('\n')
	case 'r':
		out.WriteByte('\r')
	case 't':
		out.WriteByte('\t')
	case 'u':
		code, ok := hex4(body, pos+2)
		if !ok {
			end := pos + 6
			if end > len(body) {
				end = len(body)
			}
			return pos, gqlerror.Errorf(src, pos,
				"Invalid character escape sequence: %s.", body[pos:end])
		}
		next := pos + 6
		r := rune(code)
		if utf16.IsSurrogate(r) && strings.HasPrefix(body[next:], `\u`) {
			if low, ok := hex4(body, next+2); ok {
				if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
					out.WriteRune(pair)
					return next + 6, nil
				}
			}
		}
		out.WriteRune(r)
		return next, nil
	default:
		r, _ := utf8.DecodeRuneInString(body[pos+1:])
		return pos, gqlerror.Errorf(src, pos,
			"Invalid character escape sequence: \\%s.", gqlerror.Printable(r))
	}
	return pos + 2, nil
}

// hex4 decodes exactly four hex digits at pos, shifting in four bits at a time.
func hex4(body string, pos int) (int, bool) {
	if pos+4 > len(body) {
		return 0, false
	}
	code := 0
	for i := 0; i < 4; i++ {
		d := hexDigit(body[pos+i])
		if d < 0 {
			return 0, false
		}
		code = code<<4 | d
	}
	return code, true
}

// hexDigit converts a hex character to its value, or -1.
func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// peek returns the byte at pos as a rune, or 0 past the end.
func peek(body string, pos int) rune {
	if pos >= len(body) {
		return 0
	}
	return rune(body[pos])
}

// describeAt renders the character at pos for an error message.
func describeAt(body string, pos int) string {
	if pos >= len(body) {
		return string(token.EOF)
	}
	r, _ := utf8.DecodeRuneInString(body[pos:])
	return "\"" + gqlerror.Printable(r) + "\""
}

// isNameStart checks if a rune can start a name.
func isNameStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isNameContinue checks if a rune can continue a name.
func isNameContinue(r rune) bool {
	return isNameStart(r) || isDigit(r)
}

// isDigit checks if a rune is a decimal digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
