package domain

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		raw  string
		want StaffRole
	}{
		{"owner", RoleOwner},
		{"OWNER", RoleOwner},
		{"  Manager  ", RoleManager},
		{"director", RoleDirector},
		{"instructor", RoleInstructor},
		{"licensed", RoleLicensed},
		{"student", RoleStudent},
		{"apprentice", RoleApprentice},
		{"artist", RoleArtist},
		{"staff", RoleStaff},
		{"receptionist", RoleStaff},
		{"", RoleStaff},
	}
	for _, tc := range cases {
		if got := NormalizeRole(tc.raw); got != tc.want {
			t.Errorf("NormalizeRole(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeEmployment(t *testing.T) {
	cases := []struct {
		raw  string
		want EmploymentType
	}{
		{"booth_renter", EmploymentBoothRenter},
		{"BOOTH_RENTER", EmploymentBoothRenter},
		{"commissioned", EmploymentCommissioned},
		{"employee", EmploymentEmployee},
		{"contractor", EmploymentEmployee},
		{"", EmploymentEmployee},
	}
	for _, tc := range cases {
		if got := NormalizeEmployment(tc.raw); got != tc.want {
			t.Errorf("NormalizeEmployment(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestIsManagement(t *testing.T) {
	for _, role := range []StaffRole{RoleOwner, RoleDirector, RoleManager} {
		if !role.IsManagement() {
			t.Errorf("%s should be management", role)
		}
	}
	for _, role := range []StaffRole{RoleInstructor, RoleLicensed, RoleStudent, RoleApprentice, RoleStaff, RoleArtist} {
		if role.IsManagement() {
			t.Errorf("%s should not be management", role)
		}
	}
}
