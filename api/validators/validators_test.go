package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
)

type selectionPayload struct {
	ProductID    int64  `json:"product_id" validate:"required,min=1"`
	QuantityStep int    `json:"quantity_step,omitempty" validate:"omitempty,oneof=-1 1"`
	Mark         string `json:"reseller_mark,omitempty"`
}

func decode(body string) (selectionPayload, error) {
	var dest selectionPayload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return dest, DecodeJSONBody(req, &dest)
}

func requireValidation(t *testing.T, err error) *pkgerrors.Error {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	return typed
}

func TestDecodeJSONBody(t *testing.T) {
	got, err := decode(`{"product_id":3,"quantity_step":-1}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ProductID != 3 || got.QuantityStep != -1 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestDecodeJSONBodyRejects(t *testing.T) {
	cases := map[string]string{
		"empty":    ``,
		"unknown":  `{"product_id":1,"coupon":"x"}`,
		"trailing": `{"product_id":1}{"product_id":2}`,
		"missing":  `{}`,
		"oneof":    `{"product_id":1,"quantity_step":3}`,
		"too big":  `{"product_id":1,"reseller_mark":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
	}
	for name, body := range cases {
		if _, err := decode(body); err == nil {
			t.Fatalf("%s: expected error", name)
		} else {
			requireValidation(t, err)
		}
	}
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	_, err := decode(`{"product_id":1,"quantity_step":2}`)
	details, ok := requireValidation(t, err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", requireValidation(t, err).Details())
	}
	if details["quantity_step"] != "must be one of [-1 1]" {
		t.Fatalf("unexpected message %q", details["quantity_step"])
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  north   shop\t", 0, "north shop"},
		{"dis\x00pensary", 0, "dispensary"},
		{"ñandú verde", 5, "ñandú"},
		{"green leaf co", 6, "green"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25", nil)
	if v, err := ParseQueryInt(req, "limit", 50, 1, 200); err != nil || v != 25 {
		t.Fatalf("expected 25, got %d %v", v, err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if v, _ := ParseQueryInt(req, "limit", 50, 1, 200); v != 50 {
		t.Fatalf("expected default, got %d", v)
	}
	for _, raw := range []string{"abc", "0", "201"} {
		req = httptest.NewRequest(http.MethodGet, "/?limit="+raw, nil)
		if _, err := ParseQueryInt(req, "limit", 50, 1, 200); err == nil {
			t.Fatalf("%s: expected error", raw)
		}
	}
}
