// Package trading sequences gateway calls to evaluate and place trades.
package trading

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/gateway"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/risk"
)

// Pipeline stage names, in execution order.
const (
	StageSession     = "session"
	StageDeploy      = "deploy"
	StageConnect     = "connect"
	StageSynchronize = "synchronize"
	StageAccount     = "account"
	StagePrice       = "price"
	StageComplete    = "complete"
)

// LegResult records the outcome of one take-profit leg submission.
type LegResult struct {
	TakeProfit float64
	Code       string
	Err        error
}

// Result is the outcome of one orchestration run. Stage records how far
// the pipeline progressed; Report is present whenever the account was
// reached and the entry resolved.
type Result struct {
	Stage   string
	Balance float64
	Report  *models.RiskReport
	Legs    []LegResult
}

// Placed reports whether every take-profit leg was submitted successfully.
func (r *Result) Placed() bool {
	if len(r.Legs) == 0 {
		return false
	}
	for _, leg := range r.Legs {
		if leg.Err != nil {
			return false
		}
	}
	return true
}

// Config holds orchestrator configuration.
type Config struct {
	AccountID string
	// StageTimeout bounds each pipeline stage. Zero disables the bound
	// and leaves cancellation to the caller's context.
	StageTimeout time.Duration
}

// Orchestrator drives the deploy/connect/synchronize/submit pipeline
// against the configured trading account.
type Orchestrator struct {
	gateway gateway.Gateway
	cfg     Config
	logger  zerolog.Logger

	// Serializes runs: one trade in flight on the configured account.
	mu sync.Mutex
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(gw gateway.Gateway, cfg Config, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		gateway: gw,
		cfg:     cfg,
		logger:  logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Execute runs the order-placement pipeline for a parsed signal. The
// risk report is computed and returned whether or not an order is to be
// placed. Any failure before order submission aborts the run; order legs
// fail independently and are recorded in the result.
//
// Execute resolves a market entry in place: after a successful run the
// signal's entry always carries a concrete price.
func (o *Orchestrator) Execute(ctx context.Context, sig *models.TradeSignal, placeOrder bool) (*Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	logger := o.logger.With().Str("symbol", sig.Symbol).Str("side", string(sig.Side)).Logger()
	res := &Result{Stage: StageSession}

	sess, err := o.gateway.Session(ctx, o.cfg.AccountID)
	if err != nil {
		return res, errors.NewStageError(StageSession, err)
	}

	res.Stage = StageDeploy
	if err := o.ensureDeployed(ctx, sess, logger); err != nil {
		return res, errors.NewStageError(StageDeploy, err)
	}

	res.Stage = StageConnect
	logger.Info().Msg("Waiting for gateway to connect to broker")
	if err := o.stage(ctx, sess.WaitConnected); err != nil {
		return res, errors.NewStageError(StageConnect, err)
	}
	if err := o.stage(ctx, sess.Connect); err != nil {
		return res, errors.NewStageError(StageConnect, err)
	}

	res.Stage = StageSynchronize
	logger.Info().Msg("Waiting for terminal state synchronization")
	if err := o.stage(ctx, sess.WaitSynchronized); err != nil {
		return res, errors.NewStageError(StageSynchronize, err)
	}

	res.Stage = StageAccount
	info, err := stageResult(o, ctx, sess.AccountInformation)
	if err != nil {
		return res, errors.NewStageError(StageAccount, err)
	}
	res.Balance = info.Balance

	if !sig.Entry.Resolved() {
		res.Stage = StagePrice
		price, err := stageResult(o, ctx, func(ctx context.Context) (*models.SymbolPrice, error) {
			return sess.SymbolPrice(ctx, sig.Symbol)
		})
		if err != nil {
			return res, errors.NewStageError(StagePrice, err)
		}
		// Buy orders execute against the bid, sell orders against the ask.
		if sig.Side == models.OrderSideBuy {
			sig.Entry = sig.Entry.Resolve(price.Bid)
		} else {
			sig.Entry = sig.Entry.Resolve(price.Ask)
		}
		logger.Info().Float64("entry", sig.Entry.Price()).Msg("Resolved market entry")
	}

	report, err := risk.Evaluate(sig, res.Balance)
	if err != nil {
		return res, err
	}
	res.Report = report
	res.Stage = StageComplete

	if !placeOrder {
		return res, nil
	}

	for _, takeProfit := range sig.TakeProfits {
		leg := LegResult{TakeProfit: takeProfit}
		order, err := sess.PlaceMarketOrder(ctx, sig.Side, sig.Symbol, sig.PositionSize, sig.StopLoss, takeProfit)
		if err != nil {
			leg.Err = errors.NewOrderError(sig.Symbol, takeProfit, err)
			logger.Error().Err(err).Float64("take_profit", takeProfit).Msg("Order leg failed")
		} else {
			leg.Code = order.Code
			logger.Info().Str("order_id", order.OrderID).Str("code", order.Code).
				Float64("take_profit", takeProfit).Msg("Order leg placed")
		}
		res.Legs = append(res.Legs, leg)
	}

	return res, nil
}

// ensureDeployed deploys the account when it is not already deploying
// or deployed, then returns.
func (o *Orchestrator) ensureDeployed(ctx context.Context, sess gateway.Session, logger zerolog.Logger) error {
	state, err := stageResult(o, ctx, sess.State)
	if err != nil {
		return err
	}
	if state.Deployed() {
		return nil
	}
	logger.Info().Str("state", string(state)).Msg("Deploying account")
	return o.stage(ctx, sess.Deploy)
}

// stage runs one pipeline step under the configured stage timeout.
func (o *Orchestrator) stage(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := o.stageContext(ctx)
	defer cancel()
	return fn(ctx)
}

func stageResult[T any](o *Orchestrator, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := o.stageContext(ctx)
	defer cancel()
	return fn(ctx)
}

func (o *Orchestrator) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.StageTimeout > 0 {
		return context.WithTimeout(ctx, o.cfg.StageTimeout)
	}
	return context.WithCancel(ctx)
}
