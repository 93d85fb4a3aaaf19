package fsutil

import (
	"io/fs"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// PermissionReader reads mode bits and owning identity for a path.
type PermissionReader interface {
	Mode(path string) (fs.FileMode, error)
	Owner(path string) (usr, group string, err error)
}

// OSPermissionReader stats the real filesystem.
type OSPermissionReader struct{}

// Mode returns the file mode, including type and setuid/setgid bits.
func (OSPermissionReader) Mode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Mode(), nil
}

// Owner resolves the owning user and group names. When a uid or gid has no
// passwd/group entry the numeric id is returned instead, so a mismatch
// against a named policy identity still surfaces rather than erroring.
func (OSPermissionReader) Owner(path string) (string, string, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return "", "", &os.PathError{Op: "stat", Path: path, Err: err}
	}

	usr := strconv.FormatUint(uint64(st.Uid), 10)
	if u, err := user.LookupId(usr); err == nil {
		usr = u.Username
	}

	grp := strconv.FormatUint(uint64(st.Gid), 10)
	if g, err := user.LookupGroupId(grp); err == nil {
		grp = g.Name
	}

	return usr, grp, nil
}
