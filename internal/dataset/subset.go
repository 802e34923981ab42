package dataset

import (
	"fmt"
	"strings"
)

// Split directory names expected under every dataset root.
const (
	TrainDir = "trainingdata"
	TestDir  = "testdata"
)

// Subset selects which split directories are scanned per root.
type Subset int

const (
	SubsetAll Subset = iota
	SubsetTrain
	SubsetTest
)

// ParseSubset maps the textual selector to a Subset. Empty, "all" and "none"
// select both splits.
func ParseSubset(value string) (Subset, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "none":
		return SubsetAll, nil
	case "train":
		return SubsetTrain, nil
	case "test":
		return SubsetTest, nil
	default:
		return SubsetAll, fmt.Errorf("subset must be one of all, train, test (got %q)", value)
	}
}

func (s Subset) String() string {
	switch s {
	case SubsetTrain:
		return "train"
	case SubsetTest:
		return "test"
	default:
		return "all"
	}
}

// Splits returns the split directory names scanned for the subset, in scan order.
func (s Subset) Splits() []string {
	switch s {
	case SubsetTrain:
		return []string{TrainDir}
	case SubsetTest:
		return []string{TestDir}
	default:
		return []string{TrainDir, TestDir}
	}
}
