package handlers

// AppHandlers bundles the constructed handlers for route registration.
type AppHandlers struct {
	ContactHandler  *ContactHandler
	CheckoutHandler *CheckoutHandler
}
