package order

type SellingMethod string

const (
	SellingOnline       SellingMethod = "ONLINE"
	SellingPlantNursery SellingMethod = "PLANT_NURSERY"
)

func (m SellingMethod) Valid() bool {
	switch m {
	case SellingOnline, SellingPlantNursery:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentFull    PaymentMethod = "FULL_PAYMENT"
	PaymentPartial PaymentMethod = "PARTIAL_PAYMENT"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentFull, PaymentPartial:
		return true
	}
	return false
}

// RequiresPaymentData reports whether the method needs an upfront payment
// record (date, amount, optional slip).
func (m PaymentMethod) RequiresPaymentData() bool {
	return m == PaymentFull || m == PaymentPartial
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	StatusComplete  Status = "COMPLETE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusComplete:
		return true
	}
	return false
}

// MetaData carries the customer and delivery details of a draft. Field
// names on the wire match the upstream commerce API.
type MetaData struct {
	FirstName             string        `json:"first_name"`
	LastName              string        `json:"last_name"`
	AdminMessage          string        `json:"admin_message,omitempty"`
	SellingMethod         SellingMethod `json:"selling_method"`
	OrderValue            float64       `json:"order_value"`
	AddressLine1          string        `json:"address_line_1"`
	AddressLine2          string        `json:"address_line_2,omitempty"`
	AddressLine3          string        `json:"address_line_3,omitempty"`
	PostalCode            string        `json:"postal_code,omitempty"`
	PrimaryPhoneNumber    string        `json:"primary_phone_number"`
	ConfirmPhoneNumber    string        `json:"confirm_phone_number"`
	Status                Status        `json:"status"`
	PaymentMethod         PaymentMethod `json:"payment_method"`
	CompanyName           string        `json:"company_name,omitempty"`
	Email                 string        `json:"email,omitempty"`
	AlternatePhoneNumber1 string        `json:"alternate_phone_number_1,omitempty"`
	AlternatePhoneNumber2 string        `json:"alternate_phone_number_2,omitempty"`
}

// Item is one draft line, derived 1:1 from the cart at submission time.
type Item struct {
	ProductID        string `json:"product_id"`
	RequiredQuantity int    `json:"required_quantity"`
}

// PaymentData is present only for FULL_PAYMENT / PARTIAL_PAYMENT drafts.
// PaidAmount is a pointer so "absent" and "zero" stay distinguishable.
type PaymentData struct {
	PaymentDate       string   `json:"payment_date,omitempty"`
	PaidAmount        *float64 `json:"paid_amount,omitempty"`
	PaymentSlipNumber string   `json:"payment_slip_number,omitempty"`
}

// Draft is the client-assembled, not-yet-submitted order payload.
type Draft struct {
	MetaData MetaData     `json:"orderMetaData"`
	Items    []Item       `json:"orderItemsData"`
	Payment  *PaymentData `json:"paymentData,omitempty"`
}

// Normalize strips payment data from COD drafts. The upstream contract is
// that a COD payload carries no paymentData at all, not blank fields.
func (d *Draft) Normalize() {
	if d.MetaData.PaymentMethod == PaymentCOD {
		d.Payment = nil
	}
}

// OrderValue is the authoritative pricing breakdown computed upstream. The
// client never prices an order itself.
type OrderValue struct {
	ItemsValue   float64 `json:"itemsValue"`
	CourierValue float64 `json:"courierValue"`
	TotalValue   float64 `json:"totalValue"`
}

// Order is the server-owned resource; this service only ever reads it.
type Order struct {
	OrderID               string        `json:"order_id"`
	SellingMethod         SellingMethod `json:"selling_method"`
	OrderValue            float64       `json:"order_value"`
	PaymentMethod         PaymentMethod `json:"payment_method"`
	CreatedAt             string        `json:"created_at"`
	UpdatedAt             string        `json:"updated_at"`
	IsDeleted             bool          `json:"is_deleted"`
	FirstName             string        `json:"first_name"`
	LastName              string        `json:"last_name"`
	AdminMessage          *string       `json:"admin_message"`
	AddressLine1          string        `json:"address_line_1"`
	AddressLine2          string        `json:"address_line_2"`
	AddressLine3          string        `json:"address_line_3"`
	PostalCode            int           `json:"postal_code"`
	PrimaryPhoneNumber    string        `json:"primary_phone_number"`
	CompanyName           *string       `json:"company_name"`
	Email                 *string       `json:"email"`
	AlternatePhoneNumber1 *string       `json:"alternate_phone_number_1"`
	AlternatePhoneNumber2 *string       `json:"alternate_phone_number_2"`
	Status                Status        `json:"status"`
}

// CreateResult is the upstream response to a create-order call.
type CreateResult struct {
	Order
	PaymentID string `json:"paymentId"`
}
