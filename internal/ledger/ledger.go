// Package ledger holds the durable reward points balance and the redemption
// flow that spends it.
package ledger

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// PointsKey is the storage key of the balance. The value is a decimal string.
const PointsKey = "ozembnicPoints"

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store is durable key-value storage for the balance.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// BalanceDisplay shows the balance somewhere.
type BalanceDisplay interface {
	ShowBalance(n int)
}

// Ledger is the process-wide points balance. The balance is never negative:
// Add ignores negative amounts and Deduct refuses to overdraw. Every mutation
// is written back to the store and announced to subscribers.
type Ledger struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex // Orders deliveries to subscribers
	balance   int
	store     Store
	logger    *log.Logger
	subs      map[int]func(balance int)
	nextSubID int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithDisplay subscribes a display for the lifetime of the ledger.
func WithDisplay(d BalanceDisplay) Option {
	return func(l *Ledger) {
		l.subscribe(d.ShowBalance)
	}
}

// Open loads the balance from store. A missing, unreadable or malformed value
// starts the balance at zero. A nil store keeps the balance in memory only.
func Open(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		logger: log.New(io.Discard),
		subs:   make(map[int]func(int)),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.balance = l.load()
	l.notify()
	return l
}

func (l *Ledger) load() int {
	if l.store == nil {
		return 0
	}
	raw, ok, err := l.store.Get(PointsKey)
	if err != nil {
		l.logger.Warn("cannot read points balance, starting at 0", "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		l.logger.Debug("ignoring malformed points balance", "value", raw)
		return 0
	}
	return n
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Add credits amount points. Negative amounts are ignored.
func (l *Ledger) Add(amount int) {
	if amount < 0 {
		l.logger.Debug("ignoring negative credit", "amount", amount)
		return
	}

	l.mu.Lock()
	l.balance += amount
	balance := l.balance
	l.persist(balance)
	l.mu.Unlock()

	l.logger.Debug("points added", "amount", amount, "balance", balance)
	l.notify()
}

// Deduct debits amount points if the balance covers it. It reports whether
// the debit happened; on false the balance is unchanged.
func (l *Ledger) Deduct(amount int) bool {
	if amount <= 0 {
		return false
	}

	l.mu.Lock()
	if l.balance < amount {
		l.mu.Unlock()
		return false
	}
	l.balance -= amount
	balance := l.balance
	l.persist(balance)
	l.mu.Unlock()

	l.logger.Debug("points deducted", "amount", amount, "balance", balance)
	l.notify()
	return true
}

// Subscribe registers fn to be called with the balance after every change.
// fn is called once immediately with the current balance. Calls to fn never
// overlap and never go back to an older balance, so fn must not mutate the
// ledger itself. The returned function removes the subscription.
func (l *Ledger) Subscribe(fn func(balance int)) (unsubscribe func()) {
	l.notifyMu.Lock()
	id := l.subscribe(fn)
	fn(l.Balance())
	l.notifyMu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

func (l *Ledger) subscribe(fn func(int)) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSubID++
	l.subs[l.nextSubID] = fn
	return l.nextSubID
}

// persist must be called with mu held so writes land in mutation order.
func (l *Ledger) persist(balance int) {
	if l.store == nil {
		return
	}
	if err := l.store.Set(PointsKey, strconv.Itoa(balance)); err != nil {
		l.logger.Warn("cannot persist points balance", "balance", balance, "error", err)
	}
}

// notify sends the latest balance to every subscriber. Deliveries are
// serialized and read the balance once they hold notifyMu, so when two
// mutations race the last delivery always carries the final balance.
func (l *Ledger) notify() {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	balance := l.balance
	fns := make([]func(int), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(balance)
	}
}
