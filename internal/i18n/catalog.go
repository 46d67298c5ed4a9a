package i18n

import (
	"regexp"
	"strings"
)

// Supported languages.
const (
	LangEnglish = "en"
	LangDutch   = "nl"
)

// Catalog maps message keys to templates with {name} placeholders. Keys
// missing from a catalog fall back to English, then to the key itself.
type Catalog struct {
	Lang     string
	messages map[string]string
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// T renders key with params. Unknown placeholders render as empty strings.
func (c *Catalog) T(key string, params map[string]string) string {
	tmpl, ok := c.messages[key]
	if !ok {
		tmpl, ok = english[key]
	}
	if !ok {
		return key
	}
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		return params[m[1:len(m)-1]]
	})
}

// Lookup returns the catalog for lang and whether it is supported.
// Unsupported languages get the English catalog.
func Lookup(lang string) (*Catalog, bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case LangEnglish, "":
		return English(), true
	case LangDutch:
		return &Catalog{Lang: LangDutch, messages: dutch}, true
	}
	return English(), false
}

// English returns the English catalog.
func English() *Catalog {
	return &Catalog{Lang: LangEnglish, messages: english}
}

// Languages lists the supported language codes.
func Languages() []string {
	return []string{LangEnglish, LangDutch}
}
