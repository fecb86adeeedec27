package entities

import "testing"

func TestStatusAndTypeValidation(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if OrderStatus("done").IsValid() {
		t.Fatalf("expected unknown order status to be invalid")
	}

	for _, s := range []BudgetStatus{BudgetStatusPending, BudgetStatusApproved, BudgetStatusRejected} {
		if !s.IsValid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if BudgetStatus("cancelled").IsValid() {
		t.Fatalf("budgets have no cancelled status")
	}

	if ServiceTypeOther.IsValid() {
		t.Fatalf("other is a report bucket, not an accepted service type")
	}
	if !ServiceTypeCleaning.IsValid() {
		t.Fatalf("expected cleaning to be valid")
	}
}

func TestRemotePhotos(t *testing.T) {
	photos := []Photo{
		{URL: "https://cdn/a.jpg", Path: "service-orders/os-1/a.jpg", Name: "a.jpg"},
		{LocalHandle: "upload-2"},
		{URL: "https://cdn/b.jpg", Path: "service-orders/os-1/b.jpg", Name: "b.jpg"},
	}

	got := RemotePhotos(photos)
	if len(got) != 2 || got[0].Name != "a.jpg" || got[1].Name != "b.jpg" {
		t.Fatalf("unexpected photos: %+v", got)
	}
}

func TestClientEmailOrEmpty(t *testing.T) {
	if (Client{}).EmailOrEmpty() != "" {
		t.Fatalf("expected empty email")
	}
	email := "ana@example.com"
	if (Client{Email: &email}).EmailOrEmpty() != email {
		t.Fatalf("expected %s", email)
	}
}
