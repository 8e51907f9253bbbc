package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

type Locale string

const (
	English             Locale = "en"
	BrazilianPortuguese Locale = "pt-BR"
)

// Supported lists the locales in matcher order; the first one is the fallback.
var Supported = []Locale{English, BrazilianPortuguese}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.BrazilianPortuguese,
})

// Lang is the read-only text table of the locale chosen at startup.
type Lang struct {
	locale Locale
	dict   Dictionary
}

// New returns the table for the best supported match of tag ("pt_BR.UTF-8",
// "pt-BR", "en-US", ...). Anything unsupported or unparsable yields English.
func New(tag string) *Lang {
	loc := Match(tag)
	return &Lang{locale: loc, dict: dictionaries[loc]}
}

func (l *Lang) Locale() Locale {
	return l.locale
}

// Resolve returns the text for path, or path itself when it is unknown.
func (l *Lang) Resolve(path string) string {
	if s, ok := l.dict[path]; ok {
		return s
	}
	return path
}

// FormatDateTime renders t in local time with the locale's layout.
func (l *Lang) FormatDateTime(t time.Time) string {
	return t.Local().Format(l.Resolve("formats.dateTime"))
}

// Match maps a host locale signal onto a supported locale.
func Match(tag string) Locale {
	tag = normalize(tag)
	if tag == "" {
		return English
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return English
	}

	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return English
	}
	return Supported[idx]
}

// Detect reads the POSIX locale variables in priority order.
func Detect(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// normalize turns "pt_BR.UTF-8@euro" into "pt-BR".
func normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "C" || tag == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(tag, "_", "-")
}
