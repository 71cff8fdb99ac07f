package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// DefaultPollInterval is the delay between connection/synchronization
// status polls.
const DefaultPollInterval = 2 * time.Second

// ClientConfig holds configuration for the gateway REST client.
type ClientConfig struct {
	Token        string
	BaseURL      string
	PollInterval time.Duration
}

// Client is a REST client for a MetaApi-style account gateway.
type Client struct {
	http *resty.Client
	poll time.Duration
}

// NewClient creates a new gateway client.
func NewClient(cfg ClientConfig) *Client {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeader("auth-token", cfg.Token).
			SetHeader("Content-Type", "application/json"),
		poll: poll,
	}
}

// Session returns a session handle for the given account. The account
// must already be provisioned on the gateway.
func (c *Client) Session(ctx context.Context, accountID string) (Session, error) {
	sess := &clientSession{client: c, accountID: accountID}
	// Verify the account exists before handing out the session.
	if _, err := sess.fetchAccount(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// clientSession is a Session bound to one account ID.
type clientSession struct {
	client    *Client
	accountID string
}

type accountResponse struct {
	ID               string `json:"_id"`
	State            string `json:"state"`
	ConnectionStatus string `json:"connectionStatus"`
}

type statusResponse struct {
	Connected    bool `json:"connected"`
	Synchronized bool `json:"synchronized"`
}

type tradeRequest struct {
	ActionType string  `json:"actionType"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	StopLoss   float64 `json:"stopLoss"`
	TakeProfit float64 `json:"takeProfit"`
}

type tradeResponse struct {
	OrderID    string `json:"orderId"`
	StringCode string `json:"stringCode"`
}

func (s *clientSession) fetchAccount(ctx context.Context) (*accountResponse, error) {
	var account accountResponse
	resp, err := s.client.http.R().
		SetContext(ctx).
		SetResult(&account).
		Get("/users/current/accounts/" + s.accountID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching account")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching account: %s: %s", resp.Status(), resp.String())
	}
	return &account, nil
}

// State returns the deployment state of the account.
func (s *clientSession) State(ctx context.Context) (models.AccountState, error) {
	account, err := s.fetchAccount(ctx)
	if err != nil {
		return "", err
	}
	return models.AccountState(account.State), nil
}

// Deploy requests deployment of the account.
func (s *clientSession) Deploy(ctx context.Context) error {
	resp, err := s.client.http.R().
		SetContext(ctx).
		Post("/users/current/accounts/" + s.accountID + "/deploy")
	if err != nil {
		return errors.Wrap(err, "deploying account")
	}
	if resp.IsError() {
		return fmt.Errorf("deploying account: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

// WaitConnected polls until the gateway reports a broker connection.
// There is no timeout beyond the caller's context.
func (s *clientSession) WaitConnected(ctx context.Context) error {
	for {
		account, err := s.fetchAccount(ctx)
		if err != nil {
			return err
		}
		if account.ConnectionStatus == "CONNECTED" {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.client.poll):
		}
	}
}

// Connect opens the order-entry connection for the account.
func (s *clientSession) Connect(ctx context.Context) error {
	resp, err := s.client.http.R().
		SetContext(ctx).
		Post("/users/current/accounts/" + s.accountID + "/connect")
	if err != nil {
		return errors.Wrap(err, "opening connection")
	}
	if resp.IsError() {
		return fmt.Errorf("opening connection: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

// WaitSynchronized polls until the terminal state is synchronized.
func (s *clientSession) WaitSynchronized(ctx context.Context) error {
	for {
		var status statusResponse
		resp, err := s.client.http.R().
			SetContext(ctx).
			SetResult(&status).
			Get("/users/current/accounts/" + s.accountID + "/connection-status")
		if err != nil {
			return errors.Wrap(err, "fetching connection status")
		}
		if resp.IsError() {
			return fmt.Errorf("fetching connection status: %s: %s", resp.Status(), resp.String())
		}
		if status.Synchronized {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.client.poll):
		}
	}
}

// AccountInformation fetches the current account information.
func (s *clientSession) AccountInformation(ctx context.Context) (*models.AccountInformation, error) {
	var info struct {
		Balance  float64 `json:"balance"`
		Currency string  `json:"currency"`
	}
	resp, err := s.client.http.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/users/current/accounts/" + s.accountID + "/account-information")
	if err != nil {
		return nil, errors.Wrap(err, "fetching account information")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching account information: %s: %s", resp.Status(), resp.String())
	}
	return &models.AccountInformation{Balance: info.Balance, Currency: info.Currency}, nil
}

// SymbolPrice fetches the current bid/ask for a symbol.
func (s *clientSession) SymbolPrice(ctx context.Context, symbol string) (*models.SymbolPrice, error) {
	var price struct {
		Bid float64 `json:"bid"`
		Ask float64 `json:"ask"`
	}
	resp, err := s.client.http.R().
		SetContext(ctx).
		SetResult(&price).
		Get("/users/current/accounts/" + s.accountID + "/symbols/" + symbol + "/current-price")
	if err != nil {
		return nil, errors.Wrapf(err, "fetching price for %s", symbol)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching price for %s: %s: %s", symbol, resp.Status(), resp.String())
	}
	return &models.SymbolPrice{Symbol: symbol, Bid: price.Bid, Ask: price.Ask}, nil
}

// PlaceMarketOrder submits a market order with the given stop loss and
// take profit.
func (s *clientSession) PlaceMarketOrder(ctx context.Context, side models.OrderSide, symbol string, volume, stopLoss, takeProfit float64) (*models.OrderResult, error) {
	action := "ORDER_TYPE_BUY"
	if side == models.OrderSideSell {
		action = "ORDER_TYPE_SELL"
	}

	var result tradeResponse
	resp, err := s.client.http.R().
		SetContext(ctx).
		SetBody(tradeRequest{
			ActionType: action,
			Symbol:     symbol,
			Volume:     volume,
			StopLoss:   stopLoss,
			TakeProfit: takeProfit,
		}).
		SetResult(&result).
		Post("/users/current/accounts/" + s.accountID + "/trade")
	if err != nil {
		return nil, errors.NewOrderError(symbol, takeProfit, err)
	}
	if resp.IsError() {
		return nil, errors.NewOrderError(symbol, takeProfit, fmt.Errorf("%s: %s", resp.Status(), resp.String()))
	}
	return &models.OrderResult{OrderID: result.OrderID, Code: result.StringCode}, nil
}
