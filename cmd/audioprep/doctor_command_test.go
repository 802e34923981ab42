package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDoctorPassesForJob(t *testing.T) {
	env := setupCLITestEnv(t)
	jobPath := writeJob(t, env, "checked")

	out, _, err := runCLI(t, []string{"doctor", "--job", jobPath}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "State directory")
	requireContains(t, out, "Dataset trainingdata")
	requireContains(t, out, "will be created")
}

func TestDoctorReportsMissingSplit(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.RemoveAll(filepath.Join(env.root, "trainingdata")); err != nil {
		t.Fatal(err)
	}
	jobPath := writeJob(t, env, "broken")

	out, _, err := runCLI(t, []string{"doctor", "--job", jobPath}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	requireContains(t, out, "FAIL")
	requireContains(t, out, "does not exist")
}
