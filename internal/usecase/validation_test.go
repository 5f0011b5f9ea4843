package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestValidatePlaceOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.OrderDraft)
		field  string
	}{
		{"valid", func(*model.OrderDraft) {}, ""},
		{"no items", func(d *model.OrderDraft) { d.Items = nil }, "at least one item"},
		{"missing product", func(d *model.OrderDraft) { d.Items[0].ProductID = 0 }, "orderItems[0].product"},
		{"zero quantity", func(d *model.OrderDraft) { d.Items[0].Quantity = 0 }, "orderItems[0].quantity"},
		{"unknown size", func(d *model.OrderDraft) { d.Items[0].Size = "XS" }, "orderItems[0].size"},
		{"lowercase size", func(d *model.OrderDraft) { d.Items[0].Size = "s" }, "orderItems[0].size"},
		{"negative item price", func(d *model.OrderDraft) { d.Items[0].Price = -1 }, "orderItems[0].price"},
		{"missing address", func(d *model.OrderDraft) { d.Shipping.Address = " " }, "shippingInfo.address"},
		{"missing phone", func(d *model.OrderDraft) { d.Shipping.Phone = "" }, "shippingInfo.phone"},
		{"negative tax", func(d *model.OrderDraft) { d.TaxPrice = -0.5 }, "taxPrice"},
		{"negative total", func(d *model.OrderDraft) { d.TotalPrice = -1 }, "totalPrice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)
			err := ValidatePlaceOrder(draft)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("expected valid draft, got %v", err)
				}
				return
			}
			if !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error to mention %q, got %v", tc.field, err)
			}
		})
	}
}

func TestValidatePlaceOrderAcceptsInconsistentTotals(t *testing.T) {
	draft := validDraft()
	draft.ItemsPrice = 1
	draft.TotalPrice = 1000
	if err := ValidatePlaceOrder(draft); err != nil {
		t.Fatalf("expected totals to be accepted as submitted, got %v", err)
	}
}

func TestValidateProduct(t *testing.T) {
	cases := []struct {
		name    string
		product model.Product
		wantErr bool
	}{
		{"valid", model.Product{Name: "Tee", Price: 10, Stock: []int{1, 2}}, false},
		{"no stock", model.Product{Name: "Tee"}, false},
		{"missing name", model.Product{Name: " ", Price: 10}, true},
		{"negative price", model.Product{Name: "Tee", Price: -1}, true},
		{"too many sizes", model.Product{Name: "Tee", Stock: []int{1, 1, 1, 1, 1, 1}}, true},
		{"negative stock", model.Product{Name: "Tee", Stock: []int{1, -1}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProduct(&tc.product)
			if tc.wantErr != (err != nil) {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
			if err != nil && !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
