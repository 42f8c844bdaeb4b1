package corpus

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DetectLanguage infers a lowercase language name ("python",
// "javascript", ...) from the file name using chroma's lexer registry.
// Unknown files yield "" so language-scoped heuristics simply never
// fire on them.
func DetectLanguage(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		if ext := filepath.Ext(path); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}
