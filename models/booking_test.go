package models

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		guest    PartyStatus
		host     PartyStatus
		override Status
		want     Status
	}{
		{"both requested", PartyStatusRequested, PartyStatusRequested, "", StatusRequested},
		{"both scheduled", PartyStatusScheduled, PartyStatusScheduled, "", StatusScheduled},
		{"guest confirmed first", PartyStatusCompleted, PartyStatusScheduled, "", StatusCompletedPending},
		{"host confirmed first", PartyStatusScheduled, PartyStatusCompleted, "", StatusCompletedPending},
		{"both confirmed", PartyStatusCompleted, PartyStatusCompleted, "", StatusCompleted},
		{"guest cancelled", PartyStatusCancelled, PartyStatusScheduled, "", StatusCancelled},
		{"host cancelled", PartyStatusScheduled, PartyStatusCancelled, "", StatusCancelled},
		{"decline override wins", PartyStatusRequested, PartyStatusRequested, StatusDeclined, StatusDeclined},
		{"cancel override wins", PartyStatusCompleted, PartyStatusScheduled, StatusCancelled, StatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(tc.guest, tc.host, tc.override); got != tc.want {
				t.Errorf("DeriveStatus(%s, %s, %q) = %s, want %s", tc.guest, tc.host, tc.override, got, tc.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusCancelled, StatusDeclined}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	open := []Status{StatusRequested, StatusScheduled, StatusCompletedPending}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestBookingParties(t *testing.T) {
	b := &Booking{HostUID: "host-1", GuestUID: "guest-1"}

	if !b.IsParty("host-1") || !b.IsParty("guest-1") {
		t.Error("both named parties should be recognized")
	}
	if b.IsParty("stranger") {
		t.Error("a stranger is not a party")
	}

	if p, ok := b.PartyOf("guest-1"); !ok || p != PartyGuest {
		t.Errorf("PartyOf(guest-1) = %s, %v", p, ok)
	}
	if p, ok := b.PartyOf("host-1"); !ok || p != PartyHost {
		t.Errorf("PartyOf(host-1) = %s, %v", p, ok)
	}
	if _, ok := b.PartyOf("stranger"); ok {
		t.Error("PartyOf(stranger) should not resolve")
	}
}

func TestTrackOfAndReviewLock(t *testing.T) {
	b := &Booking{
		GuestStatus:   PartyStatusCompleted,
		HostStatus:    PartyStatusScheduled,
		BuyerReviewID: "rev-1",
	}
	if b.TrackOf(PartyGuest) != PartyStatusCompleted {
		t.Error("guest track mismatch")
	}
	if b.TrackOf(PartyHost) != PartyStatusScheduled {
		t.Error("host track mismatch")
	}
	if b.ReviewLockID(RoleBuyer) != "rev-1" {
		t.Error("buyer lock should be set")
	}
	if b.ReviewLockID(RoleSeller) != "" {
		t.Error("seller lock should be empty")
	}
}
