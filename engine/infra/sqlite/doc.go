// Package sqlite provides the modernc.org/sqlite backed storage accessor and post repository.
//
// There is no pooling: every repository call opens one physical connection, runs one
// statement and closes it again. Each open is recorded on a ConnCounter.
package sqlite
