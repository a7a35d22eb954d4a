package pkg

// ShortenAddress renders a platform address as "first6…last4" for display.
// Addresses of 10 characters or fewer are returned unmodified.
func ShortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
