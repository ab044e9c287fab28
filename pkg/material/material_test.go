package material

import (
	"errors"
	"testing"
)

func TestBuiltinCatalogFind(t *testing.T) {
	c := NewBuiltinCatalog()

	m, err := c.Find(Niobium)
	if err != nil {
		t.Fatalf("Find(niobium): %v", err)
	}
	if m.Role != RoleConductor {
		t.Errorf("niobium role = %v, want conductor", m.Role)
	}

	si, err := c.Find(Silicon)
	if err != nil {
		t.Fatalf("Find(silicon): %v", err)
	}
	if si.Role != RoleSubstrate {
		t.Errorf("silicon role = %v, want substrate", si.Role)
	}

	// Vacuum and liquid helium are distinct entries sharing a role.
	vac, err := c.Find(Vacuum)
	if err != nil {
		t.Fatalf("Find(vacuum): %v", err)
	}
	lhe, err := c.Find(LiquidHelium)
	if err != nil {
		t.Fatalf("Find(liquid_helium): %v", err)
	}
	if vac.Role != RoleVacuum || lhe.Role != RoleVacuum {
		t.Errorf("vacuum roles = %v / %v, want vacuum twice", vac.Role, lhe.Role)
	}
}

func TestBuiltinCatalogMiss(t *testing.T) {
	c := NewBuiltinCatalog()
	_, err := c.Find("unobtainium")
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("error = %v, want ErrUnknownMaterial", err)
	}
}

func TestBuiltinCatalogAdd(t *testing.T) {
	c := NewBuiltinCatalog()
	c.Add(Material{Name: "tantalum", Role: RoleConductor, Density: 16.7})

	m, err := c.Find("tantalum")
	if err != nil {
		t.Fatalf("Find(tantalum): %v", err)
	}
	if m.Role != RoleConductor {
		t.Errorf("tantalum role = %v, want conductor", m.Role)
	}
}

func TestRoleString(t *testing.T) {
	if RoleVacuum.String() != "vacuum" {
		t.Errorf("RoleVacuum.String() = %q", RoleVacuum.String())
	}
	if RoleHousingMetal.String() != "housing-metal" {
		t.Errorf("RoleHousingMetal.String() = %q", RoleHousingMetal.String())
	}
	if Role(99).String() != "unknown" {
		t.Errorf("out-of-range role should print unknown")
	}
}

func TestZeroRoleIsUnknown(t *testing.T) {
	var r Role
	if r != RoleUnknown {
		t.Error("zero Role should be RoleUnknown")
	}
}
