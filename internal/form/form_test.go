package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	s := New(5)
	require.Equal(t, 0, s.Palette())
	for i := 0; i < Count; i++ {
		require.Equal(t, "", s.Answer(i))
	}
}

func TestSetAnswerTouchesOnlyOneSlot(t *testing.T) {
	inputs := []string{"", "x", "multi\nline", "  padded  ", "ünïcødé ✓"}
	for i := 0; i < Count; i++ {
		for _, text := range inputs {
			s := New(5)
			for j := 0; j < Count; j++ {
				require.NoError(t, s.SetAnswer(j, string(rune('A'+j))))
			}
			before := s.Answers()

			require.NoError(t, s.SetAnswer(i, text))

			after := s.Answers()
			require.Equal(t, text, after[i])
			for j := 0; j < Count; j++ {
				if j != i {
					require.Equal(t, before[j], after[j], "slot %d changed when updating %d", j, i)
				}
			}
		}
	}
}

func TestSetAnswerOutOfRange(t *testing.T) {
	s := New(5)
	require.ErrorIs(t, s.SetAnswer(-1, "x"), ErrAnswerIndex)
	require.ErrorIs(t, s.SetAnswer(Count, "x"), ErrAnswerIndex)
	require.Equal(t, [Count]string{}, s.Answers())
}

func TestSelectPaletteIdempotent(t *testing.T) {
	for p := 0; p < 5; p++ {
		s := New(5)
		require.NoError(t, s.SelectPalette(p))
		once := s.Snapshot()
		require.NoError(t, s.SelectPalette(p))
		require.Equal(t, once, s.Snapshot())
	}
}

func TestSelectPaletteRoundTrip(t *testing.T) {
	s := New(5)
	initial := s.Snapshot()
	require.NoError(t, s.SelectPalette(4))
	require.Equal(t, 4, s.Palette())
	require.NoError(t, s.SelectPalette(0))
	require.Equal(t, initial, s.Snapshot())
}

func TestSelectPaletteOutOfRange(t *testing.T) {
	s := New(5)
	require.NoError(t, s.SelectPalette(3))
	require.ErrorIs(t, s.SelectPalette(5), ErrPaletteIndex)
	require.ErrorIs(t, s.SelectPalette(-1), ErrPaletteIndex)
	require.Equal(t, 3, s.Palette())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New(5)
	require.NoError(t, s.SetAnswer(0, "before"))
	snap := s.Snapshot()
	require.NoError(t, s.SetAnswer(0, "after"))
	require.Equal(t, "before", snap.Answers[0])
}
