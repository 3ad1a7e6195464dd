package tokenizer

import (
	"io"

	"github.com/kdlsoa/kdl/internal/classify"
)

// readLineComment consumes "//" through (but not including) the terminating
// newline or EOF.
func (s *Scanner) readLineComment() ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	s.skip() // first /
	s.skip() // second /

	for {
		c, err := s.peek()
		if err == io.EOF {
			return s.copyFromMark(), nil
		}
		if err != nil {
			return nil, err
		}
		if classify.IsNewline(c) {
			return s.copyFromMark(), nil
		}
		s.skip()
	}
}

// readBlockComment consumes a "/* ... */" comment, tracking nesting depth so
// that "/* /* */ */" closes correctly.
func (s *Scanner) readBlockComment() ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	s.skip() // /
	s.skip() // *

	depth := 1
	for depth > 0 {
		c1, c2, err := s.peekTwo()
		if err == io.EOF {
			return nil, s.lexError(UnterminatedComment, "unterminated block comment")
		}
		if err != nil {
			return nil, err
		}
		switch {
		case c1 == '/' && c2 == '*':
			s.skip()
			s.skip()
			depth++
		case c1 == '*' && c2 == '/':
			s.skip()
			s.skip()
			depth--
		default:
			s.skip()
		}
	}
	return s.copyFromMark(), nil
}

// readKeyword consumes "#" followed by a bare word, validating it against the
// fixed set of KDL 2.0.0 keyword literals.
func (s *Scanner) readKeyword() ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	s.skip() // #

	for {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == io.EOF || !classify.IsIdentifierContinue(c) {
			break
		}
		s.skip()
	}

	lit := s.copyFromMark()
	switch string(lit) {
	case "#true", "#false", "#null", "#inf", "#-inf", "#nan":
		return lit, nil
	default:
		return nil, s.lexError(InvalidIdentifier, "unknown keyword literal %q", lit)
	}
}

// readIdentifier consumes a bare identifier, including the sign-prefixed
// forms ("-", "+", "--foo") that are not also valid number prefixes.
func (s *Scanner) readIdentifier() (ID, []byte, error) {
	s.pushMark()
	defer s.popMark()

	c, err := s.peek()
	if err != nil {
		return Unknown, nil, err
	}
	if !classify.IsIdentifierStart(c) {
		return Unknown, nil, s.lexError(InvalidIdentifier, "unexpected character %c", c)
	}
	s.skip()

	for {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			return Unknown, nil, err
		}
		if err == io.EOF || !classify.IsIdentifierContinue(c) {
			break
		}
		s.skip()
	}

	return Ident, s.copyFromMark(), nil
}

// readDecimal consumes a decimal integer or float literal, including an
// optional sign, exponent, and fractional part. Underscore separators must
// be flanked by digits on both sides.
func (s *Scanner) readDecimal() (ID, []byte, error) {
	s.pushMark()
	defer s.popMark()

	if c, err := s.peek(); err == nil && classify.IsSign(c) {
		s.skip()
	}

	if err := s.readDigitRun(classify.IsDigit); err != nil {
		return Unknown, nil, err
	}

	isFloat := false

	if c, err := s.peek(); err == nil && c == '.' {
		_, c2, perr := s.peekTwo()
		if perr == nil && classify.IsDigit(c2) {
			isFloat = true
			s.skip() // .
			if err := s.readDigitRun(classify.IsDigit); err != nil {
				return Unknown, nil, err
			}
		}
	}

	if c, err := s.peek(); err == nil && (c == 'e' || c == 'E') {
		_, c2, perr := s.peekTwo()
		if perr == nil && (classify.IsDigit(c2) || classify.IsSign(c2)) {
			isFloat = true
			s.skip() // e
			if c3, err := s.peek(); err == nil && classify.IsSign(c3) {
				s.skip()
			}
			if err := s.readDigitRun(classify.IsDigit); err != nil {
				return Unknown, nil, err
			}
		}
	}

	lit := s.copyFromMark()
	if err := validateUnderscores(lit, classify.IsDigit); err != nil {
		return Unknown, nil, s.lexError(InvalidNumber, "%s", err.Error())
	}

	if isFloat {
		return Decimal | floatMarker, lit, nil
	}
	return Decimal, lit, nil
}

// floatMarker is or'd into the returned ID by readDecimal to let the caller
// distinguish "1" from "1.0" without a second parse; callers recover the
// canonical ID with BaseID and test for the marker with IsFloatLiteral.
const floatMarker ID = 1 << 16

// BaseID strips any internal marker bits, returning the canonical token ID.
func (t ID) BaseID() ID {
	return t &^ floatMarker
}

// IsFloatLiteral reports whether a Decimal token carries a fractional part or
// exponent, as opposed to being a plain integer.
func (t ID) IsFloatLiteral() bool {
	return t&floatMarker != 0
}

func (s *Scanner) readDigitRun(valid func(rune) bool) error {
	c, err := s.peek()
	if err != nil {
		if err == io.EOF {
			return s.lexError(InvalidNumber, "expected digit, got end of input")
		}
		return err
	}
	if !valid(c) {
		return s.lexError(InvalidNumber, "expected digit, got %c", c)
	}
	s.skip()

	for {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			return err
		}
		if err == io.EOF {
			return nil
		}
		if valid(c) || c == '_' {
			s.skip()
			continue
		}
		return nil
	}
}

// readHexadecimal, readOctal, readBinary consume "0x"/"0o"/"0b" prefixed
// integer literals. KDL 2.0.0 has no non-decimal float syntax.
func (s *Scanner) readHexadecimal() ([]byte, error) {
	return s.readPrefixedInt("0x", classify.IsHexDigit)
}

func (s *Scanner) readOctal() ([]byte, error) {
	return s.readPrefixedInt("0o", classify.IsOctalDigit)
}

func (s *Scanner) readBinary() ([]byte, error) {
	return s.readPrefixedInt("0b", classify.IsBinaryDigit)
}

func (s *Scanner) readPrefixedInt(prefix string, valid func(rune) bool) ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	s.skip() // 0
	s.skip() // x/o/b

	if err := s.readDigitRun(valid); err != nil {
		return nil, err
	}

	lit := s.copyFromMark()
	if err := validateUnderscores(lit[len(prefix):], valid); err != nil {
		return nil, s.lexError(InvalidNumber, "%s", err.Error())
	}
	return lit, nil
}

// validateUnderscores rejects a literal body with a leading, trailing, or
// doubled underscore; every underscore must have a digit (as judged by
// isDigit, the literal's radix) on each side.
func validateUnderscores(lit []byte, isDigit func(rune) bool) error {
	for i, b := range lit {
		if b != '_' {
			continue
		}
		if i == 0 || !isDigit(rune(lit[i-1])) {
			return &underscoreError{lit, i}
		}
		if i == len(lit)-1 || !isDigit(rune(lit[i+1])) {
			return &underscoreError{lit, i}
		}
	}
	return nil
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

type underscoreError struct {
	lit []byte
	pos int
}

func (e *underscoreError) Error() string {
	return "misplaced underscore separator in numeric literal " + string(e.lit)
}

// readQuotedString consumes a standard quoted string, including the
// triple-quote multi-line form. The returned Data is the raw source text,
// quotes included; unescaping happens in the document package, which also
// validates and strips the multi-line form's common indentation.
func (s *Scanner) readQuotedString() ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	s.skip() // opening "

	if c1, c2, err := s.peekTwo(); err == nil && c1 == '"' && c2 == '"' {
		s.skip()
		s.skip()
		return s.readMultilineStringBody()
	} else if err != nil && err != io.EOF {
		return nil, err
	}

	for {
		c, err := s.peek()
		if err == io.EOF {
			return nil, s.lexError(UnterminatedString, "unterminated string literal")
		}
		if err != nil {
			return nil, err
		}
		switch {
		case c == '\\':
			s.skip()
			if _, err := s.peek(); err == io.EOF {
				return nil, s.lexError(UnterminatedString, "unterminated escape sequence")
			} else if err != nil {
				return nil, err
			}
			s.skip()
		case c == '"':
			s.skip()
			return s.copyFromMark(), nil
		case classify.IsNewline(c):
			return nil, s.lexError(UnterminatedString, "newline in single-line string")
		default:
			s.skip()
		}
	}
}

// readMultilineStringBody consumes the remainder of a """ string, having
// already consumed the opening """. It scans line by line, looking for a
// line whose content (after the final newline) is exactly an optional run of
// whitespace followed by a bare closing """.
func (s *Scanner) readMultilineStringBody() ([]byte, error) {
	for {
		c, err := s.peek()
		if err == io.EOF {
			return nil, s.lexError(UnterminatedString, "unterminated multi-line string")
		}
		if err != nil {
			return nil, err
		}

		if classify.IsNewline(c) {
			if err := s.consumeNewline(); err != nil {
				return nil, err
			}
			if closed, err := s.tryCloseMultilineString(); err != nil {
				return nil, err
			} else if closed {
				return s.copyFromMark(), nil
			}
			continue
		}

		if c == '\\' {
			s.skip()
			if _, err := s.peek(); err == io.EOF {
				return nil, s.lexError(UnterminatedString, "unterminated escape sequence")
			}
			s.skip()
			continue
		}

		s.skip()
	}
}

func (s *Scanner) consumeNewline() error {
	c, err := s.peek()
	if err != nil {
		return err
	}
	if c == '\r' {
		s.skip()
		if c2, err := s.peek(); err == nil && c2 == '\n' {
			s.skip()
		}
		return nil
	}
	s.skip()
	return nil
}

// tryCloseMultilineString looks ahead, without consuming unless the line
// really is the closing delimiter, for an (optionally whitespace-indented)
// bare """ terminating the current line.
func (s *Scanner) tryCloseMultilineString() (bool, error) {
	snap := s.snapshot()

	for {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			s.rewind(snap)
			return false, err
		}
		if err == io.EOF || !classify.IsWhitespace(c) {
			break
		}
		s.skip()
	}

	c1, c2, err := s.peekThree()
	if err != nil && err != io.EOF {
		s.rewind(snap)
		return false, err
	}
	if c1 != '"' || c2 != '"' {
		s.rewind(snap)
		return false, nil
	}

	s.skip()
	s.skip()
	c3, err := s.peek()
	if err != nil && err != io.EOF {
		s.rewind(snap)
		return false, err
	}
	if c3 != '"' {
		s.rewind(snap)
		return false, nil
	}
	s.skip()

	if n, err := s.peek(); err == nil && (classify.IsIdentifierContinue(n) && n != '"') {
		s.rewind(snap)
		return false, nil
	}

	return true, nil
}

// peekThree peeks the first two runes (helper name retained for readability
// at call sites that check a third rune immediately after).
func (s *Scanner) peekThree() (rune, rune, error) {
	return s.peekTwo()
}

// readRawString consumes a KDL 2.0.0 raw string: N '#' characters, a '"',
// arbitrary content (no escape processing), a closing '"' followed by
// exactly N '#' characters. Supports the triple-quote multi-line raw form.
func (s *Scanner) readRawString() ([]byte, error) {
	s.pushMark()
	defer s.popMark()

	hashes := 0
	for {
		c, err := s.peek()
		if err != nil {
			return nil, err
		}
		if c != '#' {
			break
		}
		s.skip()
		hashes++
	}

	c, err := s.peek()
	if err != nil || c != '"' {
		return nil, s.lexError(InvalidIdentifier, "expected opening quote in raw string")
	}
	s.skip()

	multiline := false
	if c1, c2, perr := s.peekTwo(); perr == nil && c1 == '"' && c2 == '"' {
		s.skip()
		s.skip()
		multiline = true
	}

	for {
		c, err := s.peek()
		if err == io.EOF {
			return nil, s.lexError(UnterminatedRawString, "unterminated raw string")
		}
		if err != nil {
			return nil, err
		}

		if c != '"' {
			if !multiline && classify.IsNewline(c) {
				return nil, s.lexError(UnterminatedRawString, "newline in single-line raw string")
			}
			s.skip()
			continue
		}

		if ok, err := s.tryCloseRawString(hashes); err != nil {
			return nil, err
		} else if ok {
			return s.copyFromMark(), nil
		}
		s.skip()
	}
}

// tryCloseRawString attempts to consume a '"' followed by exactly want '#'
// characters, backtracking if the hash count doesn't match.
func (s *Scanner) tryCloseRawString(want int) (bool, error) {
	snap := s.snapshot()

	c, err := s.peek()
	if err != nil || c != '"' {
		s.rewind(snap)
		return false, nil
	}
	s.skip()

	got := 0
	for got < want {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			s.rewind(snap)
			return false, err
		}
		if err == io.EOF || c != '#' {
			break
		}
		s.skip()
		got++
	}

	if got != want {
		s.rewind(snap)
		return false, nil
	}
	return true, nil
}
