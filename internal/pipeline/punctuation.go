package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Punctuation weights: how strongly a trailing mark asks for a line break.
const (
	weightSentence  = 10
	weightSemicolon = 6
	weightComma     = 5
	weightColon     = 4
	weightDash      = 3
	weightHyphen    = 2
	weightNone      = 0
)

var punctuationWeights = map[rune]int{
	'.': weightSentence, '!': weightSentence, '?': weightSentence,
	// 。！？…
	'\u3002': weightSentence, '\uff01': weightSentence, '\uff1f': weightSentence, '\u2026': weightSentence,

	';': weightSemicolon, ',': weightComma,
	// ；，、
	'\uff1b': weightSemicolon, '\uff0c': weightComma, '\u3001': weightComma,

	':': weightColon, '-': weightHyphen,
	// ：— –
	'\uff1a': weightColon, '\u2014': weightDash, '\u2013': weightDash,
}

var sentenceEnders = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'\u3002': {}, '\uff01': {}, '\uff1f': {}, // 。！？
}

var clauseMarks = map[rune]struct{}{
	',': {}, ';': {}, ':': {},
	'\uff0c': {}, '\uff1b': {}, '\uff1a': {}, '\u3001': {}, // ，；：、
}

// representativeMark returns the first rune of run that carries a weight,
// so `".` weighs as a period and `?!` as a question mark.
func representativeMark(run string) (rune, int) {
	for _, r := range run {
		if w, ok := punctuationWeights[r]; ok {
			return r, w
		}
	}
	return 0, weightNone
}

func isSentenceEndMark(r rune) bool {
	_, ok := sentenceEnders[r]
	return ok
}

// hasClauseMark reports whether run contains a comma, semicolon or colon.
func hasClauseMark(run string) bool {
	for _, r := range run {
		if _, ok := clauseMarks[r]; ok {
			return true
		}
	}
	return false
}

func hasComma(run string) bool {
	return strings.ContainsAny(run, ",\uff0c\u3001")
}

// trailingPunctuation returns the run of punctuation that ends token, used
// when the word cannot be located in the source text.
func trailingPunctuation(token string) string {
	token = strings.TrimSpace(token)
	end := len(token)
	i := end
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(token[:i])
		if !unicode.IsPunct(r) {
			break
		}
		i -= size
	}
	return token[i:end]
}

// punctuationRunAt reads the punctuation run starting at byte pos of text.
// A run glued to a following letter or digit ("U.S", "well-known") is part
// of the word, not trailing punctuation, and yields "".
func punctuationRunAt(text string, pos int) string {
	i := pos
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsPunct(r) {
			break
		}
		i += size
	}
	if i == pos {
		return ""
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) && !isSpacelessScript(r) {
			return ""
		}
	}
	return text[pos:i]
}
