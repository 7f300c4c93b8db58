package utils

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a unique millisecond-timestamp-derived id. Ids produced in
// the same millisecond are bumped forward so they never collide and are
// never reused within a process.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// ReserveID marks an externally supplied id (e.g. from an imported snapshot)
// as taken so NextID never hands it out again.
func ReserveID(id int64) {
	idMu.Lock()
	defer idMu.Unlock()
	if id > lastID {
		lastID = id
	}
}
