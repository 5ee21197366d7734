package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "file-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "cert.pem")
	require.False(t, Exists(path))
	require.NoError(t, ioutil.WriteFile(path, []byte("foo"), 0600))
	require.True(t, Exists(path))
	require.False(t, Exists(dir))
}
