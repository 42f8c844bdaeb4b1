package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.py", "print('hi')\n")
	writeFile(t, root, "src/index.js", "eval(x)\n")
	writeFile(t, root, "node_modules/pkg/index.js", "ignored\n")
	writeFile(t, root, "logo.png", "\x89PNG\r\n\x1a\nbinary")
	writeFile(t, root, "data.bin", "a\x00b")

	units, err := Collect(context.Background(), Options{
		Root:            root,
		Repository:      "demo",
		DefaultExcludes: true,
	})
	require.NoError(t, err)
	require.Len(t, units, 2)

	paths := map[string]string{}
	for _, u := range units {
		paths[u.FilePath] = u.Language
		assert.Equal(t, "demo", u.Repository)
	}
	assert.Equal(t, "python", paths["src/app.py"])
	assert.Equal(t, "javascript", paths["src/index.js"])
}

func TestCollectGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x\n")
	writeFile(t, root, "b.js", "y\n")
	writeFile(t, root, "docs/c.md", "z\n")

	units, err := Collect(context.Background(), Options{Root: root, IncludeGlobs: "**/*.py,**/*.js"})
	require.NoError(t, err)
	require.Len(t, units, 2)

	units, err = Collect(context.Background(), Options{Root: root, ExcludeGlobs: "*.js"})
	require.NoError(t, err)
	for _, u := range units {
		assert.NotEqual(t, "b.js", u.FilePath)
	}
}

func TestCollectSkipHook(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.txt", "keep\n")
	writeFile(t, root, "skip.txt", "skip\n")

	units, err := Collect(context.Background(), Options{
		Root: root,
		Skip: func(rel string, _ []byte) bool { return rel == "skip.txt" },
	})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "keep.txt", units[0].FilePath)
}

func TestCollectMaxBytes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.txt", "0123456789abcdef")
	writeFile(t, root, "small.txt", "ok")

	units, err := Collect(context.Background(), Options{Root: root, MaxBytes: 8})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "small.txt", units[0].FilePath)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "python", DetectLanguage("scripts/run.py"))
	assert.Equal(t, "javascript", DetectLanguage("web/app.js"))
	assert.Equal(t, "typescript", DetectLanguage("web/app.ts"))
	assert.Equal(t, "go", DetectLanguage("main.go"))
	assert.Equal(t, "", DetectLanguage("notes.xyzzy"))
}
