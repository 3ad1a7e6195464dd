// Package classify provides branch-free character predicates and byte-scanning
// helpers shared by the tokenizer, the structural pre-scanner, and the
// partitioner. Keeping them in one place means the scalar scanner and the
// structural pre-scanner agree, by construction, on what counts as
// whitespace, a newline, or a structural byte.
package classify

import "bytes"

// IsWhitespace reports whether c is KDL whitespace (not counting newlines).
func IsWhitespace(c rune) bool {
	switch c {
	case // unicode-space
		'\t', ' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		' ',
		'　',
		// BOM
		'﻿':
		return true
	default:
		return false
	}
}

// IsNewline reports whether c is a KDL newline character. "\r\n" is handled
// by the caller as a single two-byte newline; each byte individually still
// satisfies IsNewline.
func IsNewline(c rune) bool {
	switch c {
	case '\r', '\n', '', '', ' ', ' ':
		return true
	default:
		return false
	}
}

// IsLineSpace reports whether c is whitespace or a newline.
func IsLineSpace(c rune) bool {
	return IsWhitespace(c) || IsNewline(c)
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsHexDigit reports whether c is a valid hexadecimal digit.
func IsHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsOctalDigit reports whether c is a valid octal digit.
func IsOctalDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

// IsBinaryDigit reports whether c is 0 or 1.
func IsBinaryDigit(c rune) bool {
	return c == '0' || c == '1'
}

// IsSign reports whether c is + or -.
func IsSign(c rune) bool {
	return c == '-' || c == '+'
}

// IsSeparator reports whether c terminates a value: whitespace, a newline, or ';'.
func IsSeparator(c rune) bool {
	return IsWhitespace(c) || IsNewline(c) || c == ';'
}

// isReservedIdentChar reports whether c is one of the KDL 2.0.0 reserved
// structural characters that may never appear in a bare identifier:
// ( ) { } / \ " # = ;
func isReservedIdentChar(c rune) bool {
	switch c {
	case '(', ')', '{', '}', '/', '\\', '"', '#', '=', ';':
		return true
	}
	return false
}

// IsIdentifierStart reports whether c may begin a bare identifier. Note that
// '+' and '-' are permitted as a first character; the caller must additionally
// check that the following character is not a digit.
func IsIdentifierStart(c rune) bool {
	if IsLineSpace(c) || IsDigit(c) {
		return false
	}
	if c <= 0x20 || c > 0x10FFFF {
		return false
	}
	return !isReservedIdentChar(c)
}

// IsIdentifierContinue reports whether c may continue a bare identifier once started.
func IsIdentifierContinue(c rune) bool {
	if IsLineSpace(c) {
		return false
	}
	if c <= 0x20 || c > 0x10FFFF {
		return false
	}
	return !isReservedIdentChar(c)
}

// IsStructural reports whether b is one of the structural bytes the
// pre-scanner indexes: '{' '}' ';' '"' '#' '(' ')' '=' '/' '\n' '\\'.
func IsStructural(b byte) bool {
	switch b {
	case '{', '}', ';', '"', '#', '(', ')', '=', '/', '\n', '\\':
		return true
	}
	return false
}

// NextStructuralByte returns the index of the next structural byte in b at
// or after from, or -1 if none exists. It is a thin wrapper around
// bytes.IndexAny tuned to the fixed structural-byte set; Go's stdlib
// implementation of IndexAny/IndexByte is assembly-optimized per
// architecture, which is the "vectorized scan" this module relies on in
// place of hand-rolled SIMD intrinsics.
func NextStructuralByte(b []byte, from int) int {
	if from >= len(b) {
		return -1
	}
	idx := bytes.IndexAny(b[from:], "{};\"#()=/\n\\")
	if idx < 0 {
		return -1
	}
	return from + idx
}

// NextUnescapedByte returns the index of the next occurrence of target in b
// at or after from that is not preceded by an odd number of consecutive
// backslashes, or -1 if none exists. Used to locate the terminating quote of
// a quoted string body without a full tokenizer pass.
func NextUnescapedByte(b []byte, from int, target byte) int {
	i := from
	for {
		idx := bytes.IndexByte(b[i:], target)
		if idx < 0 {
			return -1
		}
		pos := i + idx
		backslashes := 0
		for p := pos - 1; p >= 0 && b[p] == '\\'; p-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return pos
		}
		i = pos + 1
	}
}
