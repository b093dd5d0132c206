package probes

import (
	"errors"
	"io/fs"
	"time"

	"tamperscan/internal/host"
)

// Shared fakes for the host seams. Each test wires only the fields it cares
// about; newTestHost gives a benign baseline that passes every check.

var errDenied = errors.New("operation not permitted")

type fakeFileInfo struct {
	name string
	mode fs.FileMode
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() any           { return nil }

type fakeFS struct {
	exists      map[string]bool
	openable    map[string]bool
	links       map[string]string
	writable    map[string]bool
	probeWrites []string
	blockWrites chan struct{}
}

func (f *fakeFS) Stat(path string) (fs.FileInfo, error) {
	if f.exists[path] {
		return fakeFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeFS) Lstat(path string) (fs.FileInfo, error) {
	if _, ok := f.links[path]; ok {
		return fakeFileInfo{name: path, mode: fs.ModeSymlink}, nil
	}
	if f.exists[path] {
		return fakeFileInfo{name: path, mode: fs.ModeDir}, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeFS) Readlink(path string) (string, error) {
	if target, ok := f.links[path]; ok {
		return target, nil
	}
	return "", fs.ErrInvalid
}

func (f *fakeFS) OpenReadable(path string) error {
	if f.openable[path] {
		return nil
	}
	return errDenied
}

func (f *fakeFS) ProbeWrite(dir string) error {
	if f.blockWrites != nil {
		<-f.blockWrites
	}
	f.probeWrites = append(f.probeWrites, dir)
	if f.writable[dir] {
		return nil
	}
	return errDenied
}

type fakeProc struct {
	tracer    int
	tracerErr error
	ppid      int
	initPID   int
}

func (p fakeProc) TracerPID() (int, error) { return p.tracer, p.tracerErr }
func (p fakeProc) ParentPID() int          { return p.ppid }
func (p fakeProc) InitPID() int            { return p.initPID }

type fakeImages struct {
	images []string
	err    error
}

func (f fakeImages) Snapshot() ([]string, error) { return f.images, f.err }

type fakeMemory struct {
	region    host.Region
	regionErr error
	data      []byte
	readErr   error
}

func (m fakeMemory) Region(addr uintptr) (host.Region, error) {
	return m.region, m.regionErr
}

func (m fakeMemory) Read(addr uintptr, n int) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if n > len(m.data) {
		n = len(m.data)
	}
	return m.data[:n], nil
}

type fakeThreads struct {
	supported  bool
	threads    []host.Thread
	threadsErr error
	states     map[int]host.DebugState
	stateErrs  map[int]error
}

func (f fakeThreads) Supported() bool { return f.supported }

func (f fakeThreads) Threads() ([]host.Thread, error) { return f.threads, f.threadsErr }

func (f fakeThreads) DebugState(t host.Thread) (host.DebugState, error) {
	if err, ok := f.stateErrs[t.TID]; ok {
		return host.DebugState{}, err
	}
	return f.states[t.TID], nil
}

type fakeControl struct {
	supported bool
	pid       int
	err       error
	killed    []int
	killedCh  chan int
	blockFork chan struct{}
}

func (c *fakeControl) Supported() bool { return c.supported }

func (c *fakeControl) Fork() (int, error) {
	if c.blockFork != nil {
		<-c.blockFork
	}
	return c.pid, c.err
}

func (c *fakeControl) Kill(pid int) error {
	c.killed = append(c.killed, pid)
	if c.killedCh != nil {
		c.killedCh <- pid
	}
	return nil
}

type fakeType map[string]bool

func (t fakeType) Responds(capability string) bool { return t[capability] }

type fakeRegistry struct {
	supported bool
	types     map[string]fakeType
}

func (r fakeRegistry) Supported() bool { return r.supported }

func (r fakeRegistry) Lookup(name string) (host.RegisteredType, bool) {
	t, ok := r.types[name]
	return t, ok
}

func newTestHost() *host.Host {
	return &host.Host{
		FS:       &fakeFS{},
		Process:  fakeProc{tracer: 0, ppid: 1, initPID: 1},
		Images:   fakeImages{images: []string{"/usr/bin/app", "/usr/lib/libc.so"}},
		Memory:   fakeMemory{regionErr: host.ErrUnsupported},
		Threads:  fakeThreads{},
		Control:  &fakeControl{},
		Registry: fakeRegistry{},
		LookupEnv: func(string) (string, bool) {
			return "", false
		},
	}
}
