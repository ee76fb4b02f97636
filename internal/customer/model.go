package customer

// Profile is the slice of the customer record the checkout flow needs to build
// a shipping address.
type Profile struct {
	CustomerID uint
	City       string
	Country    string
	Contact    string
	Email      string
}

// ShippingAddress renders the profile into the single-line address stored on
// the order header.
func (p *Profile) ShippingAddress() string {
	addr := p.City
	if p.Country != "" {
		if addr != "" {
			addr += ", "
		}
		addr += p.Country
	}
	return addr
}
