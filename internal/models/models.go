// Package models provides domain models for the signal copier.
package models

// OrderSide represents the side of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// AccountState represents the deployment state of a trading account
// on the remote gateway.
type AccountState string

const (
	AccountUndeployed AccountState = "UNDEPLOYED"
	AccountDeploying  AccountState = "DEPLOYING"
	AccountDeployed   AccountState = "DEPLOYED"
)

// Deployed reports whether the account is already deploying or deployed,
// meaning no deploy request is needed before connecting.
func (s AccountState) Deployed() bool {
	return s == AccountDeploying || s == AccountDeployed
}

// AccountInformation holds account details fetched from the gateway.
type AccountInformation struct {
	Balance  float64
	Currency string
}

// SymbolPrice holds the current bid/ask quote for an instrument.
type SymbolPrice struct {
	Symbol string
	Bid    float64
	Ask    float64
}

// OrderResult represents the result of an order submission.
type OrderResult struct {
	OrderID string
	Code    string
}
