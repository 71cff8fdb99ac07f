package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// SimSession implements Gateway and Session with in-memory state. It is
// used by the offline calculate command and by tests. Stage failures can
// be injected to exercise the orchestrator's abort behavior.
type SimSession struct {
	mu sync.Mutex

	state    models.AccountState
	balance  float64
	currency string
	prices   map[string]models.SymbolPrice

	// Injected stage failures, keyed by stage name.
	failures map[string]error

	orderCounter int
	orders       []SimOrder
}

// SimOrder records an order placed against the simulated session.
type SimOrder struct {
	Side       models.OrderSide
	Symbol     string
	Volume     float64
	StopLoss   float64
	TakeProfit float64
}

// SimConfig holds configuration for the simulated session.
type SimConfig struct {
	Balance  float64
	Currency string
}

// NewSimSession creates a simulated session with the given balance.
func NewSimSession(cfg SimConfig) *SimSession {
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	return &SimSession{
		state:    models.AccountDeployed,
		balance:  cfg.Balance,
		currency: currency,
		prices:   make(map[string]models.SymbolPrice),
		failures: make(map[string]error),
	}
}

// SetPrice sets the quoted bid/ask for a symbol.
func (s *SimSession) SetPrice(symbol string, bid, ask float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = models.SymbolPrice{Symbol: symbol, Bid: bid, Ask: ask}
}

// SetState overrides the simulated account state.
func (s *SimSession) SetState(state models.AccountState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// FailStage injects a failure for a stage ("state", "deploy", "connected",
// "connect", "synchronized", "account", "price", "order").
func (s *SimSession) FailStage(stage string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[stage] = err
}

// Orders returns all orders placed against the simulated session.
func (s *SimSession) Orders() []SimOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SimOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *SimSession) fail(stage string) error {
	return s.failures[stage]
}

// Session returns the simulated session itself, for any account ID.
func (s *SimSession) Session(ctx context.Context, accountID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("session"); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the simulated account state.
func (s *SimSession) State(ctx context.Context) (models.AccountState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("state"); err != nil {
		return "", err
	}
	return s.state, nil
}

// Deploy marks the account as deployed.
func (s *SimSession) Deploy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("deploy"); err != nil {
		return err
	}
	s.state = models.AccountDeployed
	return nil
}

// WaitConnected returns immediately unless a failure is injected.
func (s *SimSession) WaitConnected(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail("connected")
}

// Connect returns immediately unless a failure is injected.
func (s *SimSession) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail("connect")
}

// WaitSynchronized returns immediately unless a failure is injected.
func (s *SimSession) WaitSynchronized(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail("synchronized")
}

// AccountInformation returns the simulated balance.
func (s *SimSession) AccountInformation(ctx context.Context) (*models.AccountInformation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("account"); err != nil {
		return nil, err
	}
	return &models.AccountInformation{Balance: s.balance, Currency: s.currency}, nil
}

// SymbolPrice returns the quoted price for a symbol.
func (s *SimSession) SymbolPrice(ctx context.Context, symbol string) (*models.SymbolPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("price"); err != nil {
		return nil, err
	}
	price, ok := s.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for symbol %s", symbol)
	}
	return &price, nil
}

// PlaceMarketOrder records the order and returns a successful result.
func (s *SimSession) PlaceMarketOrder(ctx context.Context, side models.OrderSide, symbol string, volume, stopLoss, takeProfit float64) (*models.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("order"); err != nil {
		return nil, err
	}
	s.orders = append(s.orders, SimOrder{
		Side:       side,
		Symbol:     symbol,
		Volume:     volume,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
	})
	s.orderCounter++
	return &models.OrderResult{
		OrderID: fmt.Sprintf("SIM-%06d", s.orderCounter),
		Code:    "TRADE_RETCODE_DONE",
	}, nil
}
