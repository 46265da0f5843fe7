package types

import "testing"

func TestVocabularyMembership(t *testing.T) {
	if !IsMuscleGroup("chest") || !IsMuscleGroup(" Chest ") {
		t.Fatal("chest should be accepted regardless of case and spacing")
	}
	if IsMuscleGroup("wings") {
		t.Fatal("wings is not a muscle group")
	}
	if !IsWorkoutCategory("HIIT") {
		t.Fatal("hiit should be accepted case-insensitively")
	}
	if IsWorkoutCategory("yoga") {
		t.Fatal("yoga is not a workout category")
	}
	if !IsDifficulty("beginner") || IsDifficulty("expert") {
		t.Fatal("difficulty vocabulary mismatch")
	}
}

func TestVocabularyAccessorsReturnCopies(t *testing.T) {
	a := MuscleGroups()
	a[0] = "mutated"
	b := MuscleGroups()
	if b[0] == "mutated" {
		t.Fatal("MuscleGroups must return a copy")
	}
}

func TestVocabularySizes(t *testing.T) {
	if n := len(MuscleGroups()); n != 14 {
		t.Fatalf("muscle groups = %d, want 14", n)
	}
	if n := len(WorkoutCategories()); n != 9 {
		t.Fatalf("workout categories = %d, want 9", n)
	}
	if n := len(Difficulties()); n != 3 {
		t.Fatalf("difficulties = %d, want 3", n)
	}
}
