package service

import (
	"errors"
	"testing"

	"github.com/greencart/internal/db"
)

func TestFavoriteServiceToggle(t *testing.T) {
	gdb := setupTestDB(t)
	strains := seedStrains(t, gdb, db.Strain{Name: "Blue Dream"}, db.Strain{Name: "Gelato"})
	user := seedUser(t, gdb, "fav@example.com")
	svc := NewFavoriteService(gdb)

	on, err := svc.Toggle(user.ID, strains[1].ID)
	if err != nil || !on {
		t.Fatalf("expected favorite on, got %v %v", on, err)
	}
	if _, err := svc.Toggle(user.ID, strains[0].ID); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	ids, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != strains[1].ID {
		t.Fatalf("unexpected favorites: %v", ids)
	}

	off, err := svc.Toggle(user.ID, strains[1].ID)
	if err != nil || off {
		t.Fatalf("expected favorite off, got %v %v", off, err)
	}

	// toggling back on must not collide with the removed row
	again, err := svc.Toggle(user.ID, strains[1].ID)
	if err != nil || !again {
		t.Fatalf("expected favorite on again, got %v %v", again, err)
	}

	favs, err := svc.Strains(user.ID)
	if err != nil {
		t.Fatalf("Strains returned error: %v", err)
	}
	if len(favs) != 2 || favs[0].Name != "Blue Dream" {
		t.Fatalf("unexpected favorite strains: %+v", favs)
	}

	if _, err := svc.Toggle(user.ID, 999); !errors.Is(err, ErrStrainNotFound) {
		t.Fatalf("expected ErrStrainNotFound, got %v", err)
	}
}
