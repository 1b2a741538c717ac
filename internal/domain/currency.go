package domain

// Currency is one entry of the fixed reference set (USD, ECU, MLC, ...).
// Seeded once by migrations, looked up by code everywhere else.
type Currency struct {
	ID   int64
	Code string
	Name string
	Icon string
}
