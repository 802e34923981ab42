// Package dataset indexes labeled audio and spectrogram files on disk.
//
// A dataset root holds a trainingdata and a testdata split, each containing
// one directory per class label. Open walks the splits selected by a Subset
// and produces an immutable, ordered sequence of records (index, label, path).
// Ordering is fully deterministic: roots in the order supplied, then the
// training split before the test split, then label directories and files in
// lexicographic order. Hidden entries are never indexed.
//
// WithTransform layers a caller-supplied transform over an Index so each Get
// returns the decoded payload instead of the raw path.
package dataset
