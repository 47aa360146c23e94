package order

import (
	"fmt"
	"regexp"
)

// Errors maps a field path (e.g. "paymentData.payment_date") to a
// human-readable message. An empty map means the draft is valid.
type Errors map[string]string

func (e Errors) add(path, message string) {
	if _, exists := e[path]; !exists {
		e[path] = message
	}
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPhoneLength = 10

// Validate runs both validation phases over the draft and merges the
// results. It never mutates the draft.
func Validate(d *Draft) Errors {
	errs := StructuralErrors(d)
	for path, msg := range RelationalErrors(d) {
		errs.add(path, msg)
	}
	return errs
}

// StructuralErrors checks each field independently: presence, length
// minimums and maximums, and closed enum sets.
func StructuralErrors(d *Draft) Errors {
	errs := Errors{}
	meta := d.MetaData

	if meta.FirstName == "" {
		errs.add("orderMetaData.first_name", "First name is required")
	}
	if meta.LastName == "" {
		errs.add("orderMetaData.last_name", "Last name is required")
	}
	if len(meta.AdminMessage) > 500 {
		errs.add("orderMetaData.admin_message", "Admin message must be at most 500 characters")
	}
	if !meta.SellingMethod.Valid() {
		errs.add("orderMetaData.selling_method", "Invalid selling method")
	}
	if meta.OrderValue < 0 {
		errs.add("orderMetaData.order_value", "Order value must be at least 0")
	}
	if meta.AddressLine1 == "" {
		errs.add("orderMetaData.address_line_1", "Address line 1 is required")
	}
	if len(meta.PrimaryPhoneNumber) < minPhoneLength {
		errs.add("orderMetaData.primary_phone_number", "Primary phone number is required")
	}
	if len(meta.ConfirmPhoneNumber) < minPhoneLength {
		errs.add("orderMetaData.confirm_phone_number", "Confirm phone number is required")
	}
	if !meta.Status.Valid() {
		errs.add("orderMetaData.status", "Invalid order status")
	}
	if !meta.PaymentMethod.Valid() {
		errs.add("orderMetaData.payment_method", "Invalid payment method")
	}
	if meta.Email != "" && !emailPattern.MatchString(meta.Email) {
		errs.add("orderMetaData.email", "Invalid email address")
	}
	if meta.AlternatePhoneNumber1 != "" && len(meta.AlternatePhoneNumber1) < minPhoneLength {
		errs.add("orderMetaData.alternate_phone_number_1", "Phone number must be at least 10 characters")
	}
	if meta.AlternatePhoneNumber2 != "" && len(meta.AlternatePhoneNumber2) < minPhoneLength {
		errs.add("orderMetaData.alternate_phone_number_2", "Phone number must be at least 10 characters")
	}

	if len(d.Items) == 0 {
		errs.add("orderItemsData", "At least one product is required")
	}
	for i, item := range d.Items {
		if item.ProductID == "" {
			errs.add(fmt.Sprintf("orderItemsData[%d].product_id", i), "Product ID is required")
		}
		if item.RequiredQuantity < 1 {
			errs.add(fmt.Sprintf("orderItemsData[%d].required_quantity", i), "Required quantity must be at least 1")
		}
	}

	return errs
}

// RelationalErrors checks rules that span fields: non-COD payment methods
// require a payment date and a paid amount, regardless of the structural
// schema treating them as optional at rest.
func RelationalErrors(d *Draft) Errors {
	errs := Errors{}

	if !d.MetaData.PaymentMethod.RequiresPaymentData() {
		return errs
	}

	if d.Payment == nil || d.Payment.PaymentDate == "" {
		errs.add("paymentData.payment_date", "Payment date is required for this payment method")
	}
	if d.Payment == nil || d.Payment.PaidAmount == nil {
		errs.add("paymentData.paid_amount", "Paid amount is required for this payment method")
	}

	return errs
}

// CheckPhoneConfirmation compares the primary and confirm phone numbers.
// It sits outside the schema on purpose: an empty confirm value and a
// mismatching one are distinct causes and get distinct messages.
func CheckPhoneConfirmation(meta MetaData) Errors {
	errs := Errors{}

	if meta.ConfirmPhoneNumber == "" {
		if meta.PrimaryPhoneNumber != "" {
			errs.add("orderMetaData.confirm_phone_number", "Please confirm your phone number")
		}
		return errs
	}

	if meta.ConfirmPhoneNumber != meta.PrimaryPhoneNumber {
		errs.add("orderMetaData.confirm_phone_number", "Phone numbers do not match")
	}

	return errs
}
