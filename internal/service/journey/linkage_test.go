package journey

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+91 98765 43210", "9876543210"},
		{"919876543210", "9876543210"},
		{"09876543210", "9876543210"},
		{"9876543210", "9876543210"},
		{"98-76-54-32-10", "9876543210"},
		{"0091 98765 43210", "9876543210"}, // 14 digits, last 10 kept
		{"", ""},
		{"call me maybe", ""},
		{"123", "123"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+91 98765 43210", "09876543210", "garbage", "", "12345678901234567890"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Errorf("NormalizePhone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestLinkVisitors_PreTenantMatch(t *testing.T) {
	tenant := activeTenant()
	tenant.AlternatePhone = "+91 91234 56789"
	checkIn := *tenant.CheckInDate

	sources := &memSources{
		visits: []domain.Visit{{
			ID: "v-linked", TenantID: &tenant.ID, VisitorName: tenant.Name,
			VisitDate: checkIn.AddDate(0, 1, 0),
		}},
		unlinked: []domain.Visit{
			// Primary phone in a different formatting, ten days before check-in.
			{ID: "v-scout", VisitorPhone: "098765 43210", VisitDate: checkIn.AddDate(0, 0, -10)},
			// Alternate phone match.
			{ID: "v-alt", VisitorPhone: "9123456789", VisitDate: checkIn.AddDate(0, 0, -3)},
			// Unrelated walk-in.
			{ID: "v-other", VisitorPhone: "9000000000", VisitDate: checkIn.AddDate(0, 0, -5)},
		},
	}
	svc := newTestService(tenant, sources)

	linked, preTenant, err := svc.linkVisitors(context.Background(), tenant)
	if err != nil {
		t.Fatalf("linkVisitors() error: %v", err)
	}

	if len(linked) != 1 || linked[0].ID != "v-linked" {
		t.Errorf("linked = %+v, want the tagged visit", linked)
	}
	if len(preTenant) != 2 {
		t.Fatalf("preTenant = %d entries, want 2", len(preTenant))
	}
	byID := map[string]PreTenantVisit{}
	for _, p := range preTenant {
		byID[p.Visit.ID] = p
	}
	if p, ok := byID["v-scout"]; !ok || p.DaysBeforeJoining != 10 {
		t.Errorf("v-scout = %+v, want 10 days before joining", p)
	}
	if _, ok := byID["v-alt"]; !ok {
		t.Error("alternate phone match missing")
	}
	if _, ok := byID["v-other"]; ok {
		t.Error("unrelated visitor must not match")
	}
}

func TestLinkVisitors_DegradesWithoutIdentity(t *testing.T) {
	unlinked := []domain.Visit{{ID: "v-1", VisitorPhone: "9876543210", VisitDate: time.Now().AddDate(0, 0, -30)}}

	// No check-in date: pre-tenant matching is skipped, not an error.
	tenant := activeTenant()
	tenant.CheckInDate = nil
	svc := newTestService(tenant, &memSources{unlinked: unlinked})

	linked, preTenant, err := svc.linkVisitors(context.Background(), tenant)
	if err != nil {
		t.Fatalf("linkVisitors() error: %v", err)
	}
	if linked == nil {
		t.Error("linked must be empty non-nil")
	}
	if len(preTenant) != 0 {
		t.Errorf("preTenant = %d entries, want 0 without a check-in date", len(preTenant))
	}

	// No usable phone numbers: same silent degradation.
	tenant = activeTenant()
	tenant.Phone = ""
	svc = newTestService(tenant, &memSources{unlinked: unlinked})

	_, preTenant, err = svc.linkVisitors(context.Background(), tenant)
	if err != nil {
		t.Fatalf("linkVisitors() error: %v", err)
	}
	if len(preTenant) != 0 {
		t.Errorf("preTenant = %d entries, want 0 without phones", len(preTenant))
	}
}
