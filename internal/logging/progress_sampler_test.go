package logging

import "testing"

func TestProgressSamplerBuckets(t *testing.T) {
	sampler := NewProgressSampler(25)
	var logged []int
	for done := 1; done <= 10; done++ {
		if sampler.ShouldLog(done, 10) {
			logged = append(logged, done)
		}
	}
	// 10% and 20% share bucket 0; 30% opens bucket 1; 50% bucket 2; 80% bucket 3; 100% always logs.
	want := []int{1, 3, 5, 8, 10}
	if len(logged) != len(want) {
		t.Fatalf("logged %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged %v, want %v", logged, want)
		}
	}
}

func TestProgressSamplerReset(t *testing.T) {
	sampler := NewProgressSampler(0)
	if !sampler.ShouldLog(1, 100) {
		t.Fatal("first call should log")
	}
	if sampler.ShouldLog(2, 100) {
		t.Fatal("same bucket should not log")
	}
	sampler.Reset()
	if !sampler.ShouldLog(2, 100) {
		t.Fatal("expected log after reset")
	}
}

func TestProgressSamplerNilAndEmpty(t *testing.T) {
	var sampler *ProgressSampler
	if !sampler.ShouldLog(1, 2) {
		t.Fatal("nil sampler should always log")
	}
	if !NewProgressSampler(5).ShouldLog(0, 0) {
		t.Fatal("zero total should log")
	}
}
