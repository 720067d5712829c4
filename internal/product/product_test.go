package product

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestPickDisplay(t *testing.T) {
	base := "product.jpg"
	override := "variant.jpg"

	if got := PickDisplay(&override, &base); got == nil || *got != "variant.jpg" {
		t.Fatalf("expected variant override, got %v", got)
	}
	if got := PickDisplay(nil, &base); got == nil || *got != "product.jpg" {
		t.Fatalf("expected product fallback, got %v", got)
	}
	if got := PickDisplay[string](nil, nil); got != nil {
		t.Fatalf("expected nil when both absent, got %v", got)
	}

	vp := decFromString(t, "459")
	pp := decFromString(t, "499")
	if got := PickDisplay(&vp, &pp); !got.Equal(vp) {
		t.Fatalf("expected variant price, got %s", got)
	}
}
