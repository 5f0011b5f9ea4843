package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrValidation, fmt.Sprintf(format, args...))
}

// ValidatePlaceOrder checks order payload before anything is persisted.
// Totals are accepted as submitted.
func ValidatePlaceOrder(in model.OrderDraft) error {
	if len(in.Items) == 0 {
		return invalid("order must contain at least one item")
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			return invalid("orderItems[%d].product is required", i)
		}
		if item.Quantity <= 0 {
			return invalid("orderItems[%d].quantity must be positive", i)
		}
		if _, ok := model.SizeIndex(item.Size); !ok {
			return invalid("orderItems[%d].size %q is not one of %s", i, item.Size, strings.Join(model.Sizes(), ","))
		}
		if item.Price < 0 {
			return invalid("orderItems[%d].price must not be negative", i)
		}
	}

	shipping := map[string]string{
		"address": in.Shipping.Address,
		"city":    in.Shipping.City,
		"pincode": in.Shipping.Pincode,
		"country": in.Shipping.Country,
		"phone":   in.Shipping.Phone,
	}
	for _, field := range []string{"address", "city", "pincode", "country", "phone"} {
		if strings.TrimSpace(shipping[field]) == "" {
			return invalid("shippingInfo.%s is required", field)
		}
	}

	prices := []struct {
		name  string
		value float64
	}{
		{"itemsPrice", in.ItemsPrice},
		{"taxPrice", in.TaxPrice},
		{"shippingPrice", in.ShippingPrice},
		{"totalPrice", in.TotalPrice},
	}
	for _, p := range prices {
		if p.value < 0 {
			return invalid("%s must not be negative", p.name)
		}
	}
	return nil
}

// ValidateProduct checks catalog entry fields supplied by admins.
func ValidateProduct(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name is required")
	}
	if p.Price < 0 {
		return invalid("price must not be negative")
	}
	if len(p.Stock) > model.SizeCount {
		return invalid("stock has %d entries, expected at most %d", len(p.Stock), model.SizeCount)
	}
	for i, s := range p.Stock {
		if s < 0 {
			return invalid("stock[%d] must not be negative", i)
		}
	}
	return nil
}
