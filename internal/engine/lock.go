package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const lockFileName = ".arkmod.lock"

// AcquireLock takes an exclusive run lock under the project root so two
// applies cannot interleave on the same tree. The returned release function
// removes the lock and is safe to call once.
func AcquireLock(root string) (func(), error) {
	lockPath := filepath.Join(root, lockFileName)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("another run holds the lock at %s; remove it if no run is active", lockPath)
		}
		return nil, fmt.Errorf("creating lock file %s: %w", lockPath, err)
	}

	fmt.Fprintln(f, strconv.Itoa(os.Getpid()))
	f.Close()

	return func() { os.Remove(lockPath) }, nil
}
