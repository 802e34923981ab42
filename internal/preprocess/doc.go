// Package preprocess runs a job end to end: it indexes the dataset, applies
// the transform chain to every record and saves the results as .npy files
// under <save_dir>/<name>/<split>/<label>/, recording the run in the
// manifest.
package preprocess
