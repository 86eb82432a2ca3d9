package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"richdoc/pkg/richdoc"
)

func docWithCaret(text string, caret int, ranges ...richdoc.StyleRange) richdoc.Document {
	return richdoc.FromBlocks(richdoc.NewBlock(1, text, ranges...)).WithSelection(richdoc.Caret(0, caret))
}

func requireText(t *testing.T, doc richdoc.Document, want string) {
	t.Helper()
	require.Equal(t, want, doc.CurrentBlock().Text.String())
}

func requireCaret(t *testing.T, doc richdoc.Document, want int) {
	t.Helper()
	require.True(t, doc.Selection.IsCollapsed(), "selection %+v is not collapsed", doc.Selection)
	require.Equal(t, want, doc.Selection.Focus)
}
