package file

import "os"

// Exists returns a bool indicating whether the provided path exists and is a
// regular file rather than a directory.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
