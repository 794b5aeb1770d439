package parse

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	lineCommentToken
	blockCommentToken
	openBraceToken
	closeBraceToken
	semicolonToken
	plusToken
	singleQuotedToken
	doubleQuotedToken
	unquotedToken
	eofToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var lineCommentMatcher = parsly.NewToken(lineCommentToken, "LineComment", &lineCommentMatch{})
var blockCommentMatcher = parsly.NewToken(blockCommentToken, "BlockComment", matcher.NewSeqBlock("/*", "*/"))
var openBraceMatcher = parsly.NewToken(openBraceToken, "{", matcher.NewByte('{'))
var closeBraceMatcher = parsly.NewToken(closeBraceToken, "}", matcher.NewByte('}'))
var semicolonMatcher = parsly.NewToken(semicolonToken, ";", matcher.NewByte(';'))
var plusMatcher = parsly.NewToken(plusToken, "+", matcher.NewByte('+'))
var singleQuotedMatcher = parsly.NewToken(singleQuotedToken, "SingleQuoted", &singleQuotedMatch{})
var doubleQuotedMatcher = parsly.NewToken(doubleQuotedToken, "DoubleQuoted", matcher.NewBlock('"', '"', '\\'))
var unquotedMatcher = parsly.NewToken(unquotedToken, "Unquoted", &unquotedMatch{})

// lineCommentMatch consumes "//" up to, not including, the line break.
type lineCommentMatch struct{}

func (m *lineCommentMatch) Match(cursor *parsly.Cursor) int {
	pos := cursor.Pos
	if pos+1 >= cursor.InputSize || cursor.Input[pos] != '/' || cursor.Input[pos+1] != '/' {
		return 0
	}
	end := pos + 2
	for end < cursor.InputSize && cursor.Input[end] != '\n' {
		end++
	}
	return end - pos
}

// singleQuotedMatch consumes a single-quoted string. Backslash has no
// meaning inside single quotes.
type singleQuotedMatch struct{}

func (m *singleQuotedMatch) Match(cursor *parsly.Cursor) int {
	pos := cursor.Pos
	if pos >= cursor.InputSize || cursor.Input[pos] != '\'' {
		return 0
	}
	for i := pos + 1; i < cursor.InputSize; i++ {
		if cursor.Input[i] == '\'' {
			return i + 1 - pos
		}
	}
	return 0
}

// unquotedMatch consumes an unquoted token: keywords, identifiers, and bare
// arguments.
type unquotedMatch struct{}

func (m *unquotedMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	end := pos
	for end < cursor.InputSize {
		c := input[end]
		if isSpace(c) || c == ';' || c == '{' || c == '}' || c == '"' || c == '\'' {
			break
		}
		if c == '/' && end+1 < cursor.InputSize && (input[end+1] == '/' || input[end+1] == '*') {
			break
		}
		end++
	}
	return end - pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
