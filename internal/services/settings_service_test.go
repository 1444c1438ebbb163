package services

import "testing"

func TestPlatformFee_DefaultWhenUnset(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, 5.00)

	fee, err := svc.PlatformFee()
	if err != nil {
		t.Fatalf("platform fee: %v", err)
	}
	if fee != 5.00 {
		t.Fatalf("expected default 5.00, got %.2f", fee)
	}
}

func TestPlatformFee_ReadsSetting(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, 5.00)

	if err := svc.Set("platform_fee_amount", "7.50"); err != nil {
		t.Fatalf("set: %v", err)
	}
	fee, err := svc.PlatformFee()
	if err != nil {
		t.Fatalf("platform fee: %v", err)
	}
	if fee != 7.50 {
		t.Fatalf("expected 7.50, got %.2f", fee)
	}

	// Overwrite through the same upsert path.
	if err := svc.Set("platform_fee_amount", "9.00"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	fee, err = svc.PlatformFee()
	if err != nil {
		t.Fatalf("platform fee: %v", err)
	}
	if fee != 9.00 {
		t.Fatalf("expected 9.00, got %.2f", fee)
	}
}

func TestPlatformFee_MalformedFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, 5.00)

	if err := svc.Set("platform_fee_amount", "not-a-number"); err != nil {
		t.Fatalf("set: %v", err)
	}
	fee, err := svc.PlatformFee()
	if err != nil {
		t.Fatalf("platform fee: %v", err)
	}
	if fee != 5.00 {
		t.Fatalf("expected fallback 5.00, got %.2f", fee)
	}
}
