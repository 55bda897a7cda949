package fetcher

// Balance is a successfully fetched wallet balance.
type Balance struct {
	// Address is the wallet address as it appeared in the configuration
	Address string

	// Amount is the balance in whole units (e.g. SOL)
	Amount float64

	// Lamports is the raw balance in base units
	Lamports uint64

	// Slot is the slot the node evaluated the request at
	Slot uint64
}

// Result represents the outcome of one fetch task.
// Workers write it into the slot matching their input index so the
// coordinator can walk results in input order.
type Result struct {
	Address string
	Balance Balance

	// Err is set when the fetch failed; Balance is then the zero value.
	Err error
}
