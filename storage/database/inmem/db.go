// Package inmemdb provides in-memory implementations of the core
// repositories. They back the admin CLI dry runs and the test suites
// where a live Postgres is not available.
package inmemdb

import (
	"sync"

	"github.com/tshimanga/elimu/core/catalog"
	"github.com/tshimanga/elimu/core/progress"
	"github.com/tshimanga/elimu/core/user"
)

type userTable struct {
	mutex sync.RWMutex
	table map[string]*user.User
}

type catalogTable struct {
	mutex sync.RWMutex
	// subjects keep their insertion order and carry their full subtree
	subjects []*catalog.Subject
}

type progressTable struct {
	mutex sync.RWMutex
	// keyed by userID + "\x00" + lessonID
	table map[string]*progress.Progress
}

type DB struct {
	user     *userTable
	catalog  *catalogTable
	progress *progressTable
}

func NewDB() *DB {
	return &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		catalog:  &catalogTable{subjects: make([]*catalog.Subject, 0)},
		progress: &progressTable{table: make(map[string]*progress.Progress)},
	}
}

// AddSubject loads a fully populated subject subtree into the catalog.
func (db *DB) AddSubject(subj catalog.Subject) {
	db.catalog.mutex.Lock()
	defer db.catalog.mutex.Unlock()
	db.catalog.subjects = append(db.catalog.subjects, &subj)
}

func (db *DB) Clear() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()

	db.catalog.mutex.Lock()
	db.catalog.subjects = make([]*catalog.Subject, 0)
	db.catalog.mutex.Unlock()

	db.progress.mutex.Lock()
	db.progress.table = make(map[string]*progress.Progress)
	db.progress.mutex.Unlock()
}
