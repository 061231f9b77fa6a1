package export

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestSaverWritesAtomically(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := &Saver{FS: fs, Dir: "/tmp/out/nested"}

	path, err := s.Save(ArchiveName, []byte("zipdata"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/out/nested/Leadership Declaration Images.zip", path)

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "zipdata", string(got))

	exists, err := afero.Exists(fs, path+".tmp")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSaverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := &Saver{FS: fs, Dir: "/d"}
	_, err := s.Save("a.zip", []byte("one"))
	require.NoError(t, err)
	path, err := s.Save("a.zip", []byte("two"))
	require.NoError(t, err)
	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "two", string(got))
}

func TestSaverReadOnlyFS(t *testing.T) {
	s := &Saver{FS: afero.NewReadOnlyFs(afero.NewMemMapFs()), Dir: "/d"}
	_, err := s.Save("a.zip", []byte("x"))
	require.Error(t, err)
}

func TestImageNames(t *testing.T) {
	require.Equal(t, "Leadership Declaration 1.png", ImageName(0))
	require.Equal(t, "Leadership Declaration 5.png", ImageName(4))
	require.Equal(t, "Leadership Declaration Images/Leadership Declaration 3.png", ImagePath(2))
	require.Equal(t, "Leadership Declaration Images.zip", ArchiveName)
}
