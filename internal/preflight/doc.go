// Package preflight provides readiness checks for the filesystem paths
// audioprep depends on: the state and log directories, dataset roots with
// their split directories, and a job's save directory.
//
// The CLI "audioprep doctor" command runs these before a long preprocessing
// run so permission problems surface up front instead of mid-run.
package preflight
