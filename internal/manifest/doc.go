// Package manifest records preprocessing runs in a SQLite database.
//
// Each run row captures the job name, output directory, persisted job
// configuration and final status; output rows list every file a run wrote
// along with the record it came from. The manifest is bookkeeping only: the
// dataset index is always rebuilt from the filesystem.
package manifest
