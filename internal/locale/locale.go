package locale

import (
	"embed"
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en"

//go:embed *.yaml
var bundled embed.FS

// Strings holds localized texts keyed by template id.
type Strings struct {
	language string
	texts    map[string]string
}

// New returns the bundled strings for the language, optionally overridden by the file at overridePath.
func New(language, overridePath string) (*Strings, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}

	data, err := bundled.ReadFile(language + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unsupported language %q", language)
	}

	texts, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse bundled %s strings: %w", language, err)
	}

	overridePath = strings.TrimSpace(overridePath)
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read locale file: %w", err)
		}
		overrides, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse locale file %q: %w", overridePath, err)
		}
		maps.Copy(texts, overrides)
	}

	return &Strings{language: language, texts: texts}, nil
}

func parse(data []byte) (map[string]string, error) {
	texts := make(map[string]string)
	if err := yaml.Unmarshal(data, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// Lookup returns the text for key or the key itself when it is not known.
func (s *Strings) Lookup(key string) string {
	if s == nil {
		return key
	}
	if text, ok := s.texts[key]; ok && text != "" {
		return text
	}
	return key
}

func (s *Strings) Language() string {
	if s == nil {
		return ""
	}
	return s.language
}
