package domain

import "testing"

func TestValidationState_CanTransition(t *testing.T) {
	t.Parallel()

	if !ValidationPending.CanTransition() {
		t.Error("pending must allow a transition")
	}
	if ValidationValidated.CanTransition() {
		t.Error("validated is terminal")
	}
	if ValidationRejected.CanTransition() {
		t.Error("rejected is terminal")
	}
}

func TestValidationState_Terminal(t *testing.T) {
	t.Parallel()

	if ValidationPending.Terminal() {
		t.Error("pending is not terminal")
	}
	if !ValidationValidated.Terminal() || !ValidationRejected.Terminal() {
		t.Error("validated and rejected are terminal")
	}
}

func TestValidRole(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{RoleVisitor, RoleExhibitor, RolePartner} {
		if !ValidRole(role) {
			t.Errorf("%s should be registerable", role)
		}
	}
	// admin accounts are provisioned, never registered
	if ValidRole(RoleAdmin) {
		t.Error("admin must not be registerable")
	}
	if ValidRole(Role("pirate")) {
		t.Error("unknown roles must be rejected")
	}
}

func TestUser_FullName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		first, last, want string
	}{
		{"Marie", "Dupont", "Marie Dupont"},
		{"Marie", "", "Marie"},
		{"", "Dupont", "Dupont"},
		{"", "", ""},
	}
	for _, tc := range cases {
		u := &User{FirstName: tc.first, LastName: tc.last}
		if got := u.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}
