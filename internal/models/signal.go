package models

// Entry represents the entry price of a trade: either a market execution
// (price discovered at order time) or a pending price fixed by the signal.
type Entry struct {
	market bool
	price  float64
}

// MarketEntry returns an entry that executes at the current market price.
// The concrete price must be resolved from a live quote before any risk
// computation.
func MarketEntry() Entry {
	return Entry{market: true}
}

// PendingEntry returns an entry fixed at the given price.
func PendingEntry(price float64) Entry {
	return Entry{price: price}
}

// Resolved reports whether a concrete entry price is known.
func (e Entry) Resolved() bool {
	return !e.market
}

// Price returns the concrete entry price. Only meaningful when Resolved.
func (e Entry) Price() float64 {
	return e.price
}

// Resolve returns a copy of the entry fixed at the given price.
func (e Entry) Resolve(price float64) Entry {
	return Entry{price: price}
}

// TradeSignal is a parsed trading signal. It is owned by exactly one
// conversation session from parse until the conversation reaches a
// terminal state.
type TradeSignal struct {
	Side         OrderSide
	Symbol       string
	Entry        Entry
	PositionSize float64
	Multiplier   float64
	StopLoss     float64
	TakeProfits  []float64
}
