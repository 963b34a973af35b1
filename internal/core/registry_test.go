package core

import (
	"errors"
	"testing"
)

func TestRegistryAssign(t *testing.T) {
	dir := NewDirectory()
	reg := NewRegistry([]string{"blue", "red"}, dir)

	p, err := reg.Assign("c1", "alice", "blue")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if p.ID != "c1" || p.Username != "alice" || p.Room != "blue" {
		t.Fatalf("unexpected participant: %+v", p)
	}
	if !dir.Has("c1") {
		t.Fatal("participant not inserted into directory")
	}

	// Duplicate display names across connections are allowed.
	if _, err := reg.Assign("c2", "alice", "red"); err != nil {
		t.Fatalf("duplicate username rejected: %v", err)
	}
}

func TestRegistryAssignOncePerConnection(t *testing.T) {
	dir := NewDirectory()
	reg := NewRegistry([]string{"blue", "red"}, dir)

	if _, err := reg.Assign("c1", "alice", "blue"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	_, err := reg.Assign("c1", "alice2", "red")
	if !errors.Is(err, ErrAlreadyIdentified) {
		t.Fatalf("expected ErrAlreadyIdentified, got %v", err)
	}
	// Rejection has no side effect.
	if size := dir.Size(); size != 1 {
		t.Fatalf("directory changed on rejection: %d entries", size)
	}
	if got := dir.Snapshot()[0].Username; got != "alice" {
		t.Fatalf("identity changed on rejection: %s", got)
	}
}

func TestRegistryValidation(t *testing.T) {
	dir := NewDirectory()
	reg := NewRegistry([]string{"blue", "red"}, dir)

	if _, err := reg.Assign("c1", "", "blue"); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if _, err := reg.Assign("c1", "alice", "green"); !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("expected ErrUnknownRoom, got %v", err)
	}
	if size := dir.Size(); size != 0 {
		t.Fatalf("failed validations reached the directory: %d entries", size)
	}
}
