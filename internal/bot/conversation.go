// Package bot implements the operator conversation and its Telegram
// transport.
package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/report"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/signal"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/trading"
)

// State represents the conversation state of one operator session.
type State int

const (
	StateIdle State = iota
	StateAwaitingTrade
	StateAwaitingCalculation
	StateAwaitingDecision
)

// Reply is one outbound message. Pre marks preformatted content that the
// transport should render in a fixed-width block.
type Reply struct {
	Text string
	Pre  bool
}

// Session holds the conversation state and the trade in progress for one
// operator. Each operator has exactly one session; sessions never share
// state.
type Session struct {
	mu    sync.Mutex
	State State
	Trade *models.TradeSignal
}

func (s *Session) reset() {
	s.State = StateIdle
	s.Trade = nil
}

// SessionStore holds conversation sessions keyed by operator identity.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for an operator, creating an idle one on first
// use.
func (s *SessionStore) Get(operator string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operator]
	if !ok {
		sess = &Session{}
		s.sessions[operator] = sess
	}
	return sess
}

// Executor runs the trade pipeline for a parsed signal. Satisfied by
// *trading.Orchestrator.
type Executor interface {
	Execute(ctx context.Context, sig *models.TradeSignal, placeOrder bool) (*trading.Result, error)
}

// Controller routes operator messages through the conversation state
// machine.
type Controller struct {
	store       *SessionStore
	exec        Executor
	allowedUser string
	logger      zerolog.Logger
}

// NewController creates a conversation controller. Only allowedUser may
// start trade or calculation flows.
func NewController(store *SessionStore, exec Executor, allowedUser string, logger zerolog.Logger) *Controller {
	return &Controller{
		store:       store,
		exec:        exec,
		allowedUser: allowedUser,
		logger:      logger.With().Str("component", "conversation").Logger(),
	}
}

// Handle processes one incoming message from an operator and returns the
// replies to send. Messages for the same operator are processed one at a
// time; different operators proceed independently.
func (c *Controller) Handle(ctx context.Context, operator, text string) []Reply {
	sess := c.store.Get(operator)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return c.handleCommand(ctx, operator, sess, commandName(text))
	}
	return c.handleText(ctx, operator, sess, text)
}

func (c *Controller) handleCommand(ctx context.Context, operator string, sess *Session, cmd string) []Reply {
	switch cmd {
	case "start":
		return []Reply{{Text: msgWelcome}}

	case "help":
		return []Reply{
			{Text: msgCommands},
			{Text: msgExampleIntro + signal.ExampleSignal()},
		}

	case "trade":
		if !c.authorized(operator) {
			return c.refuse(operator)
		}
		sess.reset()
		sess.State = StateAwaitingTrade
		return []Reply{{Text: msgEnterTrade}}

	case "calculate":
		if !c.authorized(operator) {
			return c.refuse(operator)
		}
		sess.reset()
		sess.State = StateAwaitingCalculation
		return []Reply{{Text: msgEnterCalculation}}

	case "cancel":
		if sess.State == StateIdle {
			return c.unknown(operator)
		}
		sess.reset()
		return []Reply{{Text: msgCancelled}}

	case "yes":
		if sess.State != StateAwaitingDecision || sess.Trade == nil {
			return c.unknown(operator)
		}
		replies := c.execute(ctx, sess.Trade, true)
		sess.reset()
		return replies

	case "no":
		if sess.State != StateAwaitingDecision {
			return c.unknown(operator)
		}
		sess.reset()
		return []Reply{{Text: msgCancelled}}

	default:
		return c.unknown(operator)
	}
}

func (c *Controller) handleText(ctx context.Context, operator string, sess *Session, text string) []Reply {
	switch sess.State {
	case StateAwaitingTrade:
		sig, err := signal.Parse(text)
		if err != nil {
			// Stay in the same state so the operator can resend.
			c.logger.Warn().Err(err).Str("operator", operator).Msg("Signal parse failed")
			return []Reply{{Text: parseFailure(err)}}
		}
		sess.Trade = sig
		replies := []Reply{{Text: msgParsed}}
		replies = append(replies, c.execute(ctx, sess.Trade, true)...)
		sess.reset()
		return replies

	case StateAwaitingCalculation:
		sig, err := signal.Parse(text)
		if err != nil {
			c.logger.Warn().Err(err).Str("operator", operator).Msg("Signal parse failed")
			return []Reply{{Text: parseFailure(err)}}
		}
		sess.Trade = sig
		replies := []Reply{{Text: msgParsed}}
		exec, ok := c.executeChecked(ctx, sess.Trade, false)
		replies = append(replies, exec...)
		if !ok {
			sess.reset()
			return replies
		}
		sess.State = StateAwaitingDecision
		return append(replies, Reply{Text: msgDecision})

	default:
		return c.unknown(operator)
	}
}

// execute runs the pipeline and formats its outcome.
func (c *Controller) execute(ctx context.Context, sig *models.TradeSignal, placeOrder bool) []Reply {
	replies, _ := c.executeChecked(ctx, sig, placeOrder)
	return replies
}

// executeChecked additionally reports whether the pipeline reached the
// risk report, so the calculate flow knows whether to offer a decision.
func (c *Controller) executeChecked(ctx context.Context, sig *models.TradeSignal, placeOrder bool) ([]Reply, bool) {
	res, err := c.exec.Execute(ctx, sig, placeOrder)
	if err != nil {
		stage := ""
		if res != nil {
			stage = res.Stage
		}
		c.logger.Error().Err(err).Str("stage", stage).Msg("Orchestration failed")
		return []Reply{{Text: msgConnectionIssue + err.Error()}}, false
	}

	replies := []Reply{
		{Text: msgConnected},
		{Text: report.Table(sig, res.Report), Pre: true},
	}

	if placeOrder {
		replies = append(replies, Reply{Text: msgEnteringTrade})
		failed := false
		for _, leg := range res.Legs {
			if leg.Err != nil {
				failed = true
				replies = append(replies, Reply{Text: msgOrderIssue + leg.Err.Error()})
			}
		}
		if !failed {
			replies = append(replies, Reply{Text: msgTradePlaced})
		}
	}

	return replies, true
}

func (c *Controller) authorized(operator string) bool {
	return operator == c.allowedUser
}

func (c *Controller) refuse(operator string) []Reply {
	c.logger.Warn().Str("operator", operator).Msg("Unauthorized operator")
	return []Reply{{Text: msgNotAuthorized}}
}

func (c *Controller) unknown(operator string) []Reply {
	if !c.authorized(operator) {
		return c.refuse(operator)
	}
	return []Reply{{Text: msgUnknown}}
}

// commandName extracts the bare command from a message like
// "/trade@SomeBot args".
func commandName(text string) string {
	cmd := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(cmd, " \t"); i >= 0 {
		cmd = cmd[:i]
	}
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

func parseFailure(err error) string {
	return "There was an error parsing this trade 😕\n\nError: " + err.Error() +
		"\n\nPlease re-enter the trade with this format:\n\n" + signal.FormatHelp() +
		"\n\nOr use the /cancel command to cancel this action."
}

// Operator-facing messages.
const (
	msgWelcome = "Welcome to the FX Signal Copier bot! 💻💸\n" +
		"You can use this bot to enter trades directly from Telegram and get a detailed " +
		"breakdown of your risk-to-reward ratio with profit and loss projections.\n" +
		"Use the /help command to view instructions and example trades."

	msgCommands = "List of commands:\n" +
		"/start : displays the welcome message\n" +
		"/help : displays the list of commands and example trades\n" +
		"/trade : parses a trade entered by the operator and places it\n" +
		"/calculate : calculates trade information for a trade entered by the operator"

	msgExampleIntro = "Example Trades 💴:\n\nMarket Execution:\n"

	msgEnterTrade       = "Please enter the trade you would like to place."
	msgEnterCalculation = "Please enter the trade you would like to calculate."

	msgParsed = "Trade Successfully Parsed! 🥳\nConnecting to MetaTrader ... (May take a while) ⏰"

	msgConnected = "Successfully connected to MetaTrader!\nCalculating trade risk ... 🤔"

	msgEnteringTrade = "Entering trade on MetaTrader Account ... 👨🏾‍💻"

	msgTradePlaced = "Trade entered successfully! 💰"

	msgDecision = "Would you like to place this trade?\nTo place the trade, select: /yes\nTo cancel, select: /no"

	msgCancelled = "The command has been cancelled."

	msgConnectionIssue = "There was an issue with the connection 😕\n\nError Message:\n"

	msgOrderIssue = "There was an issue placing the order 😕\n\nError Message:\n"

	msgNotAuthorized = "You are not authorized to use this bot! 🙅🏽‍♂️"

	msgUnknown = "Unknown command. Use /trade to place a trade or /calculate to get trade information. " +
		"You can also use the /help command to view instructions for this bot."
)
