package host

import (
	"io/fs"
	"os"
)

// Filesystem covers the path probes: existence, openability, symlink
// resolution, and the write+delete cycle used against supposedly immutable
// locations.
type Filesystem interface {
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	Readlink(path string) (string, error)

	// OpenReadable opens the path for reading and closes it immediately.
	// A nil return means the path was openable.
	OpenReadable(path string) error

	// ProbeWrite attempts to create, write, and remove a uniquely named
	// temporary file under dir. A nil return means the write succeeded,
	// which for a directory expected to be immutable is evidence of
	// compromise. Cleanup of the artifact is attempted on every path,
	// including when the write itself succeeded.
	ProbeWrite(dir string) error
}

type osFilesystem struct{}

func (osFilesystem) Stat(path string) (fs.FileInfo, error)  { return os.Stat(path) }
func (osFilesystem) Lstat(path string) (fs.FileInfo, error) { return os.Lstat(path) }
func (osFilesystem) Readlink(path string) (string, error)   { return os.Readlink(path) }

func (osFilesystem) OpenReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (osFilesystem) ProbeWrite(dir string) error {
	f, err := os.CreateTemp(dir, ".tamperscan-*")
	if err != nil {
		return err
	}
	name := f.Name()
	defer os.Remove(name)

	_, werr := f.WriteString("probe")
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
