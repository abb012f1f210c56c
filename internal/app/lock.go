package app

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// acquireLock takes an exclusive advisory lock for one session name so that
// two concurrent loads cannot both decide to create it. The returned release
// function is safe to call more than once.
func acquireLock(session string) (func(), error) {
	path := lockPath(session)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("load already running for session %s", session)
	}
	return sync.OnceFunc(func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
	}), nil
}

// lockPath names the lock after the uid too, since the tmp fallback is shared
// between users and tmux servers are per user.
func lockPath(session string) string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(session))
	return filepath.Join(runtimeDir, fmt.Sprintf("tp-%d-%x.lock", os.Getuid(), h.Sum64()))
}
