package domain

import "github.com/shopspring/decimal"

// Payment method type constants.
const (
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPayPal     = "paypal"
	PaymentApplePay   = "apple_pay"
	PaymentGooglePay  = "google_pay"
)

// OrderSummary is the derived pricing breakdown for a set of cart items.
// It is created fresh each time the calculator runs and never mutated.
type OrderSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Items    []CartItem      `json:"items"`
}

// CustomerInfo holds the customer section of the checkout form.
type CustomerInfo struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// Address holds a shipping address.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// PaymentMethod is tagged by Type. The card fields are only meaningful
// (and only required) for card payment types.
type PaymentMethod struct {
	Type           string `json:"type" validate:"required,oneof=credit_card debit_card paypal apple_pay google_pay"`
	CardHolderName string `json:"card_holder_name,omitempty"`
	CardNumber     string `json:"card_number,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	CVV            string `json:"cvv,omitempty"`
}

// RequiresCardDetails reports whether the payment type needs the card fields.
func (m PaymentMethod) RequiresCardDetails() bool {
	return m.Type == PaymentCreditCard || m.Type == PaymentDebitCard
}

// ValidPaymentTypes returns the set of accepted payment method types.
func ValidPaymentTypes() []string {
	return []string{
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentPayPal,
		PaymentApplePay,
		PaymentGooglePay,
	}
}

// IsValidPaymentType checks whether the given string is an accepted payment type.
func IsValidPaymentType(t string) bool {
	for _, v := range ValidPaymentTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// CheckoutData is the full payload submitted for one order attempt.
// It is assembled at submission time and never persisted beyond the attempt.
type CheckoutData struct {
	CustomerInfo    CustomerInfo  `json:"customer_info"`
	ShippingAddress Address       `json:"shipping_address"`
	BillingAddress  *Address      `json:"billing_address,omitempty"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	OrderSummary    OrderSummary  `json:"order_summary"`
}

// OrderResult is produced once per submission attempt by the payment gateway.
// OrderID is set iff Success; Error is set iff not.
type OrderResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
