// Package gateway provides the remote trading-account gateway contract
// and its implementations.
package gateway

import (
	"context"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// Gateway resolves trading sessions by account ID.
type Gateway interface {
	Session(ctx context.Context, accountID string) (Session, error)
}

// Session defines the operations the orchestrator needs from a remote
// trading account. Implementations must be safe for sequential use; the
// orchestrator never calls two operations concurrently.
type Session interface {
	// Lifecycle
	State(ctx context.Context) (models.AccountState, error)
	Deploy(ctx context.Context) error
	WaitConnected(ctx context.Context) error
	Connect(ctx context.Context) error
	WaitSynchronized(ctx context.Context) error

	// Account & market data
	AccountInformation(ctx context.Context) (*models.AccountInformation, error)
	SymbolPrice(ctx context.Context, symbol string) (*models.SymbolPrice, error)

	// Orders
	PlaceMarketOrder(ctx context.Context, side models.OrderSide, symbol string, volume, stopLoss, takeProfit float64) (*models.OrderResult, error)
}
