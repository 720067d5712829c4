package config

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/internal/pricing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.Delivery.CombineMode != pricing.CombineSum {
		t.Fatalf("expected SUM, got %q", cfg.Delivery.CombineMode)
	}
	if !cfg.Delivery.CODFeeOnFreeShipping {
		t.Fatal("COD fee should apply on free shipping by default")
	}
	if cfg.Calendar.CutoffHour != 14 {
		t.Fatalf("expected cutoff 14, got %d", cfg.Calendar.CutoffHour)
	}
	if !cfg.PlatformFee.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected platform fee 20, got %s", cfg.PlatformFee)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DELIVERY_COMBINE_MODE", "MAX_PLUS_ADDON")
	t.Setenv("PER_ADDITIONAL_PAID_ITEM_FEE", "149")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "25000")
	t.Setenv("HOLIDAYS", "2026-01-01, 2026-01-26")
	t.Setenv("COD_FEE_ON_FREE_SHIPPING", "false")

	cfg := Load()

	if cfg.Delivery.CombineMode != pricing.CombineMaxPlusAddon {
		t.Fatalf("expected MAX_PLUS_ADDON, got %q", cfg.Delivery.CombineMode)
	}
	if !cfg.Delivery.PerAdditionalPaidItemFee.Equal(decimal.NewFromInt(149)) {
		t.Fatalf("unexpected add-on fee %s", cfg.Delivery.PerAdditionalPaidItemFee)
	}
	if !cfg.Delivery.FreeShippingThreshold.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("unexpected threshold %s", cfg.Delivery.FreeShippingThreshold)
	}
	if cfg.Delivery.CODFeeOnFreeShipping {
		t.Fatal("COD_FEE_ON_FREE_SHIPPING=false should be honored")
	}
	if !cfg.Calendar.Holidays["2026-01-26"] {
		t.Fatal("holiday list should be parsed with whitespace trimmed")
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DELIVERY_COMBINE_MODE", "CHEAPEST")
	t.Setenv("CUTOFF_HOUR_LOCAL", "noon")
	t.Setenv("MAX_DELIVERY_CAP", "lots")

	cfg := Load()

	if cfg.Delivery.CombineMode != pricing.CombineSum {
		t.Fatalf("unknown mode should fall back to SUM, got %q", cfg.Delivery.CombineMode)
	}
	if cfg.Calendar.CutoffHour != 14 {
		t.Fatalf("bad cutoff should fall back to 14, got %d", cfg.Calendar.CutoffHour)
	}
	if !cfg.Delivery.MaxCap.IsZero() {
		t.Fatalf("bad cap should fall back to 0, got %s", cfg.Delivery.MaxCap)
	}
}
