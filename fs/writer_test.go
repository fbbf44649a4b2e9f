package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mnrules"
	"github.com/fwojciec/mnrules/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes rendered document", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), mnrules.DefaultOutput)
		w := fs.NewWriter(path)

		doc := &mnrules.Document{}
		doc.Append(mnrules.Entry{Page: &mnrules.RulePage{
			Title: "Minn. Rules 7511.0020 Definitions",
			URL:   "https://www.revisor.mn.gov/rules/7511.0020/",
			Sections: []mnrules.RuleSection{
				{ID: "7511.0020", Text: "Subpart 1. Scope. § applies."},
			},
		}})

		err := w.WriteDocument(context.Background(), doc)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, doc.Markdown(), string(content))
		assert.Contains(t, string(content), "§")
	})

	t.Run("writes fault marker for aborted run", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.md")
		w := fs.NewWriter(path)

		doc := &mnrules.Document{}
		doc.Abort(mnrules.FaultNoRules, nil)

		require.NoError(t, w.WriteDocument(context.Background(), doc))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Error: No rule links found on index page.\n", string(content))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.md")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

		w := fs.NewWriter(path)
		doc := &mnrules.Document{}
		doc.Append(mnrules.Entry{Page: &mnrules.RulePage{Title: "new", URL: "u"}})

		require.NoError(t, w.WriteDocument(context.Background(), doc))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, doc.Markdown(), string(content))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "out.md")
		w := fs.NewWriter(path)

		require.NoError(t, w.WriteDocument(context.Background(), &mnrules.Document{}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(filepath.Join(dir, "out.md"))

		require.NoError(t, w.WriteDocument(context.Background(), &mnrules.Document{}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.md", entries[0].Name())
	})

	t.Run("writes even when context is canceled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.md")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		doc := &mnrules.Document{}
		doc.Append(mnrules.Entry{Page: &mnrules.RulePage{
			Title: "7511.0010 ADOPTION",
			URL:   "https://www.revisor.mn.gov/rules/7511.0010/",
		}})

		err := fs.NewWriter(path).WriteDocument(ctx, doc)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, doc.Markdown(), string(content))
	})

	t.Run("rejects nil document", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(filepath.Join(t.TempDir(), "out.md"))

		err := w.WriteDocument(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, mnrules.EINVALID, mnrules.ErrorCode(err))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		err := fs.NewWriter("").WriteDocument(context.Background(), &mnrules.Document{})

		require.Error(t, err)
		assert.Equal(t, mnrules.EINVALID, mnrules.ErrorCode(err))
	})

	t.Run("returns error when path is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "out.md")
		require.NoError(t, os.Mkdir(target, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0644))

		err := fs.NewWriter(target).WriteDocument(context.Background(), &mnrules.Document{})

		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file should be removed")
	})
}
