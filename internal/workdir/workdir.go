// Package workdir scopes changes to the process working directory.
package workdir

import "os"

// In runs fn with the working directory set to dir, restoring the previous
// working directory on every exit path. The restore happens even when fn
// fails; a restore failure is reported only if fn itself succeeded.
func In(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	defer func() {
		if cerr := os.Chdir(prev); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn()
}
