//go:build e2e && unix

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrowseShowsFolderContent(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateImageWorkspace([]string{"alpha.png", "beta.png"}, []string{"nested"})
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(workspace))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("alpha.png"), "Should show the first image")
	require.True(t, tf.SeePlain("beta.png"), "Should show the second image")
	require.True(t, tf.SeePlain("nested"), "Should list the subfolder")
	require.True(t, tf.SeePlain(filepath.Base(workspace)), "Should show the folder in the title")
}

func TestBrowseSearchCountsMatches(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateImageWorkspace([]string{"alpha.png", "beta.png", "bravo.png"}, nil)
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(workspace))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("bravo.png"))

	require.NoError(t, tf.SendKeys(KeySearch))
	require.True(t, tf.SeePlain("Search:"), "Should open the search line")

	mark := tf.Mark()
	require.NoError(t, tf.Type("br"))
	if !tf.SeePlainAfter(mark, "(1)") {
		tf.DumpTailOnFail(t, "search", 4096)
		t.Fatal("Should count one match")
	}

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEscape))
	require.True(t, tf.SeePlainAfter(mark, "alpha.png"), "Should redraw without the search line")
}

func TestBrowseEntersSubfolder(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateImageWorkspace([]string{"top.png"}, []string{"nested"})
	require.NoError(t, err)
	require.NoError(t, writePNG(filepath.Join(workspace, "nested", "inner.png"), 8, 8))

	require.NoError(t, tf.StartApp(workspace))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("nested"))

	// the subfolder is the last entry of the folder pane
	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys("G"))
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEnter))
	if !tf.SeePlainAfter(mark, "inner.png") {
		tf.DumpTailOnFail(t, "enter-folder", 4096)
		t.Fatal("Should show the subfolder content")
	}

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyBackspace))
	require.True(t, tf.SeePlainAfter(mark, "top.png"), "Backspace should return to the parent")
}
