package config

import (
	"strings"

	"golang.org/x/text/language"
)

// CJK base languages.
var cjkCodes = map[string]bool{
	"zh": true,
	"ja": true,
	"ko": true,
}

// BaseLanguage reduces a BCP 47 tag ("en-US", "zh-Hant-TW", "eng") to its
// two-letter base subtag. Empty or unparseable tags return "".
func BaseLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, "auto") {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, conf := t.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// IsEnglish returns true if the tag's base language is English.
func IsEnglish(tag string) bool {
	return BaseLanguage(tag) == "en"
}

// IsCJK returns true if the tag represents Chinese, Japanese, or Korean.
func IsCJK(tag string) bool {
	return cjkCodes[BaseLanguage(tag)]
}
