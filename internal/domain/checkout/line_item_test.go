package checkout

import (
	"strings"
	"testing"

	cartdom "m3dshop/internal/domain/cart"
)

func TestPlainDescriptionStripsMarkup(t *testing.T) {
	cases := []string{
		`<p>hello <b>world</b></p>`,
		`<script>alert(1)</script>plain`,
		`<img src=x onerror=alert(1)>text`,
		`a <a href="https://x">link</a> and <h1 style="color:#fff">heading</h1>`,
		"already plain",
	}
	for _, in := range cases {
		out := PlainDescription(in)
		if strings.ContainsAny(out, "<>") {
			t.Fatalf("markup survived for %q: %q", in, out)
		}
	}
}

func TestPlainDescriptionCap(t *testing.T) {
	long := strings.Repeat("وصف ", 300)
	out := PlainDescription(long)
	if n := len([]rune(out)); n > MaxDescriptionLen {
		t.Fatalf("description not capped: %d runes", n)
	}
}

func TestPlainDescriptionCollapsesWhitespace(t *testing.T) {
	out := PlainDescription("a\n\n  b\t c")
	if out != "a b c" {
		t.Fatalf("want %q, got %q", "a b c", out)
	}
}

func TestFromCartItemVerbatimAmounts(t *testing.T) {
	it := cartdom.Item{
		Product: cartdom.ProductRef{
			ID: 1, Name: "قالب يلاشوت", Price: 5000, Currency: "usd",
			Description: "<p>rich <em>text</em></p>",
		},
		Count: 3,
	}
	li := FromCartItem(it, nil)

	if li.PriceData.UnitAmount != 5000 {
		t.Fatalf("unit amount must be verbatim minor units, got %d", li.PriceData.UnitAmount)
	}
	if li.PriceData.Currency != "usd" {
		t.Fatalf("currency must pass through, got %q", li.PriceData.Currency)
	}
	if li.Quantity != 3 {
		t.Fatalf("quantity must equal item count, got %d", li.Quantity)
	}
	if got := li.PriceData.ProductData.Description; strings.ContainsAny(got, "<>") {
		t.Fatalf("description carries markup: %q", got)
	}
}
