package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"plantstore-bff/internal/cart"
	"plantstore-bff/internal/checkout"
	"plantstore-bff/internal/logger"
	"plantstore-bff/internal/order"
	"plantstore-bff/internal/product"
	"plantstore-bff/internal/sanitize"
	"plantstore-bff/internal/wishlist"

	"go.uber.org/zap"
)

// maxJSONBody caps ordinary JSON request bodies.
const maxJSONBody = 1 << 20

// Inbound free-text fields are scrubbed before validation ever sees
// them, matching what the storefront forms do on keystroke.
var (
	sanitizePhone = sanitize.New(sanitize.Config{Kind: sanitize.Phone})
	sanitizeEmail = sanitize.New(sanitize.Config{Kind: sanitize.Email})
)

// Handler exposes the storefront REST surface.
type Handler struct {
	carts     cart.Service
	wishlists wishlist.Service
	products  product.Gateway
	orders    order.Gateway
	checkout  checkout.Service
	secret    []byte
}

func NewHandler(
	carts cart.Service,
	wishlists wishlist.Service,
	products product.Gateway,
	orders order.Gateway,
	co checkout.Service,
	secret []byte,
) *Handler {
	return &Handler{
		carts:     carts,
		wishlists: wishlists,
		products:  products,
		orders:    orders,
		checkout:  co,
		secret:    secret,
	}
}

// Register mounts every route on the mux. wrap is applied to each
// handler so the caller controls the middleware chain; protected routes
// additionally go through the session middleware.
func (h *Handler) Register(mux *http.ServeMux, wrap func(name string, hn http.Handler) http.Handler) {
	open := func(name string, fn http.HandlerFunc) http.Handler {
		return wrap(name, fn)
	}
	protected := func(name string, fn http.HandlerFunc) http.Handler {
		return wrap(name, SessionMiddleware(h.secret, fn))
	}

	mux.Handle("POST /session", open("session", h.CreateSession))
	mux.Handle("GET /healthz", open("healthz", h.Healthz))

	mux.Handle("GET /cart", protected("cart", h.GetCart))
	mux.Handle("POST /cart/items", protected("cart", h.AddCartItem))
	mux.Handle("PUT /cart/items/{id}", protected("cart", h.UpdateCartItem))
	mux.Handle("DELETE /cart/items/{id}", protected("cart", h.RemoveCartItem))
	mux.Handle("DELETE /cart", protected("cart", h.ClearCart))

	mux.Handle("GET /wishlist", protected("wishlist", h.GetWishlist))
	mux.Handle("POST /wishlist/items", protected("wishlist", h.AddWishlistItem))
	mux.Handle("DELETE /wishlist/items/{id}", protected("wishlist", h.RemoveWishlistItem))

	mux.Handle("POST /product/get-all-products", open("products", h.ListProducts))
	mux.Handle("GET /product/get-product-by-id/{id}", open("products", h.GetProduct))

	mux.Handle("POST /checkout/validate", protected("checkout", h.ValidateDraft))
	mux.Handle("POST /checkout/stock", protected("checkout", h.ValidateStock))
	mux.Handle("POST /checkout/submit", protected("checkout-submit", h.Submit))

	mux.Handle("GET /store/order-status", open("order-status", h.OrderStatus))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func sessionOrFail(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, ok := SessionFrom(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Session token is required")
	}
	return sid, ok
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	token, sid, err := IssueSessionToken(h.secret)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed issuing session token", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	RespondData(w, http.StatusCreated, map[string]string{
		"token":     token,
		"sessionId": sid,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	state, err := h.carts.Get(r.Context(), sid)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not load cart")
		return
	}
	RespondData(w, http.StatusOK, state)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var item cart.Item
	if !decodeJSON(w, r, &item) {
		return
	}

	state, err := h.carts.AddItem(r.Context(), sid, item)
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	RespondData(w, http.StatusOK, state)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	state, err := h.carts.UpdateQuantity(r.Context(), sid, r.PathValue("id"), body.Quantity)
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	RespondData(w, http.StatusOK, state)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	state, err := h.carts.RemoveItem(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	RespondData(w, http.StatusOK, state)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	state, err := h.carts.Clear(r.Context(), sid)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not clear cart")
		return
	}
	RespondData(w, http.StatusOK, state)
}

func (h *Handler) respondCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrMissingID):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrItemNotFound):
		RespondError(w, http.StatusNotFound, err.Error())
	default:
		RespondError(w, http.StatusInternalServerError, "Could not update cart")
	}
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	items, err := h.wishlists.Get(r.Context(), sid)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not load wishlist")
		return
	}
	RespondData(w, http.StatusOK, items)
}

func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var item wishlist.Item
	if !decodeJSON(w, r, &item) {
		return
	}
	if item.ID == "" {
		RespondError(w, http.StatusBadRequest, "Product id is required")
		return
	}

	items, err := h.wishlists.Add(r.Context(), sid, item)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not update wishlist")
		return
	}
	RespondData(w, http.StatusOK, items)
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	items, err := h.wishlists.Remove(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not update wishlist")
		return
	}
	RespondData(w, http.StatusOK, items)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var query product.Query
	if !decodeJSON(w, r, &query) {
		return
	}

	products, paging, err := h.products.List(r.Context(), query)
	if err != nil {
		RespondError(w, http.StatusBadGateway, "Could not load products")
		return
	}

	RespondData(w, http.StatusOK, map[string]any{
		"products": products,
		"paging":   paging,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		RespondError(w, http.StatusBadGateway, "Could not load product")
		return
	}
	RespondData(w, http.StatusOK, p)
}

// scrubDraft normalizes free-text contact fields before validation.
func scrubDraft(d *order.Draft) {
	m := &d.MetaData
	m.PrimaryPhoneNumber = sanitizePhone(m.PrimaryPhoneNumber)
	m.ConfirmPhoneNumber = sanitizePhone(m.ConfirmPhoneNumber)
	m.AlternatePhoneNumber1 = sanitizePhone(m.AlternatePhoneNumber1)
	m.AlternatePhoneNumber2 = sanitizePhone(m.AlternatePhoneNumber2)
	m.Email = sanitizeEmail(m.Email)
}

func (h *Handler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	var draft order.Draft
	if !decodeJSON(w, r, &draft) {
		return
	}
	scrubDraft(&draft)

	if errs := h.checkout.ValidateDraft(&draft); !errs.Valid() {
		RespondValidation(w, errs)
		return
	}
	RespondData(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handler) ValidateStock(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	state, err := h.carts.Get(r.Context(), sid)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "Could not load cart")
		return
	}

	report := h.checkout.ValidateStock(r.Context(), state.Items)
	if !report.OK() {
		writeJSON(w, http.StatusConflict, Envelope{
			Success: false,
			Message: "Some items are no longer available",
			Data:    report,
		})
		return
	}
	RespondData(w, http.StatusOK, report)
}

// Submit accepts either a plain JSON draft or a multipart form carrying
// the draft under "order" plus the proof-of-payment file under
// "payment-slip".
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var draft order.Draft
	var slip *checkout.SlipUpload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(order.MaxSlipSize + maxJSONBody); err != nil {
			RespondError(w, http.StatusBadRequest, "Invalid multipart request")
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("order")), &draft); err != nil {
			RespondError(w, http.StatusBadRequest, "Invalid order payload")
			return
		}

		file, header, err := r.FormFile("payment-slip")
		if err == nil {
			defer file.Close()
			slip = &checkout.SlipUpload{Filename: header.Filename, Reader: file}
		} else if !errors.Is(err, http.ErrMissingFile) {
			RespondError(w, http.StatusBadRequest, "Invalid payment slip")
			return
		}
	} else {
		if !decodeJSON(w, r, &draft) {
			return
		}
	}

	scrubDraft(&draft)

	result, err := h.checkout.Submit(r.Context(), sid, &draft, slip)
	if err != nil {
		h.respondSubmitError(w, result, err)
		return
	}

	env := Envelope{Success: true, Data: result}
	if result.Warning != "" {
		env.Message = result.Warning
	}
	writeJSON(w, http.StatusCreated, env)
}

func (h *Handler) respondSubmitError(w http.ResponseWriter, result *checkout.Result, err error) {
	switch {
	case errors.Is(err, checkout.ErrValidation):
		RespondValidation(w, result.Errors)
	case errors.Is(err, checkout.ErrStockConflict):
		writeJSON(w, http.StatusConflict, Envelope{
			Success: false,
			Message: "Some items are no longer available",
			Data:    result.StockReport,
		})
	case errors.Is(err, checkout.ErrSubmitInFlight):
		RespondError(w, http.StatusConflict, "An order submission is already in progress")
	default:
		RespondError(w, http.StatusBadGateway, "Could not submit order")
	}
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	phone := sanitizePhone(r.URL.Query().Get("phoneNumber"))

	if orderID == "" || phone == "" {
		RespondError(w, http.StatusBadRequest, "orderId and phoneNumber are required")
		return
	}

	o, err := h.orders.GetOrderStatus(r.Context(), orderID, phone)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		RespondError(w, http.StatusBadGateway, "Could not load order status")
		return
	}
	RespondData(w, http.StatusOK, o)
}
