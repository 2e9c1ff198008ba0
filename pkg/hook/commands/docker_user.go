package commands

import "os"

// currentUserIDs returns the calling process's uid/gid, or ok=false on
// platforms without POSIX ids (os.Getuid/os.Getgid report -1 on Windows).
func currentUserIDs() (uid, gid int, ok bool) {
	uid, gid = os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return 0, 0, false
	}
	return uid, gid, true
}
