package main

import (
	"encoding/json"
	"testing"
)

func TestLoaderPlanWithoutSplit(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"loader", "--root", env.root, "--batch-size", "3", "--split", "0", "--shuffle=false", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	var plan batchPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode plan: %v\n%s", err, out)
	}
	if plan.TrainSamples != 4 || plan.ValidSamples != 0 {
		t.Fatalf("unexpected counts %+v", plan)
	}
	if len(plan.Train) != 2 || len(plan.Train[0]) != 3 || len(plan.Train[1]) != 1 {
		t.Fatalf("unexpected batches %v", plan.Train)
	}
	if plan.Train[0][0] != 0 || plan.Train[1][0] != 3 {
		t.Fatalf("expected in-order batches, got %v", plan.Train)
	}
}

func TestLoaderPlanWithSplitAndCheck(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"loader", "--root", env.root, "--batch-size", "2", "--split", "0.25", "--seed", "9", "--check"}, env.configPath)
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	requireContains(t, out, "Training samples: 3")
	requireContains(t, out, "Validation samples: 1")
	requireContains(t, out, "shuffle: yes")
	requireContains(t, out, "validation")
}

func TestLoaderRejectsBadSplit(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"loader", "--root", env.root, "--split", "1"}, env.configPath); err == nil {
		t.Fatal("expected error for split of 1")
	}
}
