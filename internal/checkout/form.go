package checkout

import (
	"github.com/nmarker/unishopping/internal/domain"
	"github.com/nmarker/unishopping/pkg/validator"
)

// Form sections.
type Section string

const (
	SectionCustomer Section = "customer"
	SectionShipping Section = "shipping"
	SectionPayment  Section = "payment"
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Card detail field names within the payment section.
var cardFields = []string{"card_holder_name", "card_number", "expiry_date", "cvv"}

// Form tracks the three checkout sections and their validity. Validity is
// never stored: it is re-derived from the current field values on every
// query, so changing the payment type recomputes the card fields'
// requiredness synchronously. Entered values are never cleared when a field
// becomes optional.
//
// A Form belongs to a single checkout attempt and is not safe for
// concurrent use; the orchestrator serializes access to it.
type Form struct {
	customer domain.CustomerInfo
	shipping domain.Address
	payment  domain.PaymentMethod
	summary  *domain.OrderSummary
	touched  map[Section]map[string]bool
}

// NewForm creates a checkout form with the storefront defaults: country
// "US" and payment type credit_card.
func NewForm() *Form {
	return &Form{
		shipping: domain.Address{Country: "US"},
		payment:  domain.PaymentMethod{Type: domain.PaymentCreditCard},
		touched:  make(map[Section]map[string]bool),
	}
}

// Customer returns the customer section values.
func (f *Form) Customer() domain.CustomerInfo { return f.customer }

// SetCustomer replaces the customer section values.
func (f *Form) SetCustomer(c domain.CustomerInfo) { f.customer = c }

// Shipping returns the shipping section values.
func (f *Form) Shipping() domain.Address { return f.shipping }

// SetShipping replaces the shipping section values. An empty country falls
// back to the "US" default.
func (f *Form) SetShipping(a domain.Address) {
	if a.Country == "" {
		a.Country = "US"
	}
	f.shipping = a
}

// Payment returns the payment section values.
func (f *Form) Payment() domain.PaymentMethod { return f.payment }

// SetPayment replaces the payment section values.
func (f *Form) SetPayment(m domain.PaymentMethod) { f.payment = m }

// SetPaymentType switches the payment type while keeping any entered card
// details. Whether the card fields are required follows from the new type
// on the next validity query.
func (f *Form) SetPaymentType(t string) { f.payment.Type = t }

// CardDetailsRequired reports whether the card fields are currently required.
func (f *Form) CardDetailsRequired() bool { return f.payment.RequiresCardDetails() }

// SetSummary attaches the order summary the form was opened against.
// Overall validity requires a summary to exist.
func (f *Form) SetSummary(s *domain.OrderSummary) { f.summary = s }

// Summary returns the attached order summary, or nil.
func (f *Form) Summary() *domain.OrderSummary { return f.summary }

// Touch marks a single field as touched, making its error visible.
func (f *Form) Touch(sec Section, field string) {
	if f.touched[sec] == nil {
		f.touched[sec] = make(map[string]bool)
	}
	f.touched[sec][field] = true
}

// MarkAllTouched makes every latent error visible. It does not change any
// validity result, only which errors VisibleErrors reports.
func (f *Form) MarkAllTouched() {
	for sec, errs := range map[Section]FieldErrors{
		SectionCustomer: f.SectionErrors(SectionCustomer),
		SectionShipping: f.SectionErrors(SectionShipping),
		SectionPayment:  f.SectionErrors(SectionPayment),
	} {
		for field := range errs {
			f.Touch(sec, field)
		}
	}
}

// SectionErrors re-derives the validation errors for one section from the
// current values. Shape rules (required, email, accepted payment types) come
// from the struct tags; the conditional card-detail rule is applied on top
// for card payment types.
func (f *Form) SectionErrors(sec Section) FieldErrors {
	switch sec {
	case SectionCustomer:
		return fieldErrors(validator.Validate(f.customer))
	case SectionShipping:
		return fieldErrors(validator.Validate(f.shipping))
	case SectionPayment:
		errs := fieldErrors(validator.Validate(f.payment))
		if f.payment.RequiresCardDetails() {
			for field, value := range map[string]string{
				"card_holder_name": f.payment.CardHolderName,
				"card_number":      f.payment.CardNumber,
				"expiry_date":      f.payment.ExpiryDate,
				"cvv":              f.payment.CVV,
			} {
				if value == "" {
					errs[field] = "is required"
				}
			}
		}
		return errs
	}
	return FieldErrors{}
}

// VisibleErrors returns the section's errors restricted to touched fields.
func (f *Form) VisibleErrors(sec Section) FieldErrors {
	errs := f.SectionErrors(sec)
	visible := make(FieldErrors, len(errs))
	for field, msg := range errs {
		if f.touched[sec][field] {
			visible[field] = msg
		}
	}
	return visible
}

// SectionValid reports whether the section has no errors.
func (f *Form) SectionValid(sec Section) bool {
	return len(f.SectionErrors(sec)) == 0
}

// InvalidSections returns the sections that currently fail validation.
func (f *Form) InvalidSections() []Section {
	var invalid []Section
	for _, sec := range []Section{SectionCustomer, SectionShipping, SectionPayment} {
		if !f.SectionValid(sec) {
			invalid = append(invalid, sec)
		}
	}
	return invalid
}

// Valid reports overall form validity: all three sections valid and an
// order summary present (a non-empty cart).
func (f *Form) Valid() bool {
	return len(f.InvalidSections()) == 0 && f.summary != nil
}

// Data assembles the submission payload from the current form values and
// the attached order summary.
func (f *Form) Data() domain.CheckoutData {
	data := domain.CheckoutData{
		CustomerInfo:    f.customer,
		ShippingAddress: f.shipping,
		PaymentMethod:   f.payment,
	}
	if f.summary != nil {
		data.OrderSummary = *f.summary
	}
	return data
}

// fieldErrors flattens a validator error into a FieldErrors map.
func fieldErrors(err error) FieldErrors {
	if err == nil {
		return FieldErrors{}
	}
	if valErr, ok := err.(*validator.ValidationError); ok {
		return valErr.Fields()
	}
	return FieldErrors{"_": err.Error()}
}
