package domain

import "testing"

func TestRouteBooking(t *testing.T) {
	cases := []struct {
		name            string
		role            StaffRole
		licenseVerified bool
		want            BookingRoute
	}{
		{"licensed goes direct", RoleLicensed, false, RouteDirect},
		{"licensed verified goes direct", RoleLicensed, true, RouteDirect},
		{"legacy artist with verified license goes direct", RoleArtist, true, RouteDirect},
		{"legacy artist without verified license is supervised", RoleArtist, false, RouteSupervised},
		{"student is supervised", RoleStudent, false, RouteSupervised},
		{"student stays supervised even if verified", RoleStudent, true, RouteSupervised},
		{"apprentice is supervised", RoleApprentice, false, RouteSupervised},
		{"instructor gets both", RoleInstructor, false, RouteBoth},
		{"owner gets both", RoleOwner, false, RouteBoth},
		{"director gets both", RoleDirector, false, RouteBoth},
		{"manager gets both", RoleManager, false, RouteBoth},
		{"plain staff is denied", RoleStaff, false, RouteDenied},
		{"plain staff denied regardless of license", RoleStaff, true, RouteDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RouteBooking(tc.role, tc.licenseVerified)
			if got.Route != tc.want {
				t.Fatalf("RouteBooking(%s, %v) = %s, want %s", tc.role, tc.licenseVerified, got.Route, tc.want)
			}
			if tc.want == RouteDenied && got.Hint == "" {
				t.Fatal("denied decisions must carry a hint")
			}
			if tc.want != RouteDenied && got.Hint != "" {
				t.Fatalf("non-denied decisions carry no hint, got %q", got.Hint)
			}

			// Pure function: same inputs, same outcome.
			if again := RouteBooking(tc.role, tc.licenseVerified); again != got {
				t.Fatalf("RouteBooking is not deterministic: %+v vs %+v", got, again)
			}
		})
	}
}
