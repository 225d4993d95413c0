package ledger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
)

var (
	// ErrInsufficientPoints is matched by every ShortfallError.
	ErrInsufficientPoints = errors.New("ledger: insufficient points")
	// ErrUnknownReward is returned when a reward is not in the catalog.
	ErrUnknownReward = errors.New("ledger: unknown reward")
)

// Reward is one redeemable catalog item.
type Reward struct {
	ID   string
	Name string
	Cost int
}

// Catalog is the ordered list of rewards on offer.
type Catalog struct {
	rewards []Reward
}

// NewCatalog builds a catalog from configuration, keeping its order.
func NewCatalog(items []config.RewardConfig) *Catalog {
	c := &Catalog{rewards: make([]Reward, 0, len(items))}
	for _, it := range items {
		c.rewards = append(c.rewards, Reward{ID: it.ID, Name: it.Name, Cost: it.Cost})
	}
	return c
}

// All returns the rewards in catalog order.
func (c *Catalog) All() []Reward {
	out := make([]Reward, len(c.rewards))
	copy(out, c.rewards)
	return out
}

// Find looks a reward up by ID, or by name ignoring case.
func (c *Catalog) Find(key string) (Reward, error) {
	for _, r := range c.rewards {
		if r.ID == key || strings.EqualFold(r.Name, key) {
			return r, nil
		}
	}
	return Reward{}, fmt.Errorf("%w: %q", ErrUnknownReward, key)
}

// ShortfallError reports how many points are missing for a reward.
type ShortfallError struct {
	Reward Reward
	Needed int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("You need %s more points to redeem %s. Keep playing to earn more!",
		humanize.Comma(int64(e.Needed)), e.Reward.Name)
}

// Is makes errors.Is(err, ErrInsufficientPoints) hold.
func (e *ShortfallError) Is(target error) bool {
	return target == ErrInsufficientPoints
}

// Offer is a reward as seen with the current balance.
type Offer struct {
	Reward
	Affordable bool
	Needed     int    // Points still missing, 0 when affordable
	Label      string // Button text: "Redeem" or "Need N more"
	Prompt     string // Confirmation question
}

// Receipt is a completed redemption.
type Receipt struct {
	ID           string
	Player       string
	Reward       Reward
	BalanceAfter int
}

// Message is the success text shown to the user.
func (r Receipt) Message() string {
	return fmt.Sprintf("Successfully redeemed %s!", r.Reward.Name)
}

// Recorder keeps a history of redemptions.
type Recorder interface {
	RecordRedemption(r Receipt) error
}

// Redeemer exchanges ledger points for catalog rewards.
type Redeemer struct {
	ledger   *Ledger
	catalog  *Catalog
	recorder Recorder
	player   string
	logger   *log.Logger
}

// RedeemerOption configures a Redeemer.
type RedeemerOption func(*Redeemer)

// WithRecorder stores every receipt.
func WithRecorder(rec Recorder) RedeemerOption {
	return func(r *Redeemer) { r.recorder = rec }
}

// WithPlayer tags receipts with a player name.
func WithPlayer(name string) RedeemerOption {
	return func(r *Redeemer) { r.player = name }
}

// WithRedeemerLogger sets the logger.
func WithRedeemerLogger(logger *log.Logger) RedeemerOption {
	return func(r *Redeemer) { r.logger = logger }
}

// NewRedeemer creates a redeemer over a ledger and catalog.
func NewRedeemer(l *Ledger, c *Catalog, opts ...RedeemerOption) *Redeemer {
	r := &Redeemer{
		ledger:  l,
		catalog: c,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog being redeemed against.
func (r *Redeemer) Catalog() *Catalog {
	return r.catalog
}

// Balance returns the balance rewards are quoted against.
func (r *Redeemer) Balance() int {
	return r.ledger.Balance()
}

// Quote describes a reward against the current balance.
func (r *Redeemer) Quote(rw Reward) Offer {
	return quote(rw, r.ledger.Balance())
}

// Offers quotes every catalog reward against one balance snapshot.
func (r *Redeemer) Offers() []Offer {
	balance := r.ledger.Balance()
	all := r.catalog.All()
	offers := make([]Offer, len(all))
	for i, rw := range all {
		offers[i] = quote(rw, balance)
	}
	return offers
}

func quote(rw Reward, balance int) Offer {
	o := Offer{
		Reward: rw,
		Prompt: fmt.Sprintf("Redeem %s for %s points?", rw.Name, humanize.Comma(int64(rw.Cost))),
	}
	if balance >= rw.Cost {
		o.Affordable = true
		o.Label = "Redeem"
		return o
	}
	o.Needed = rw.Cost - balance
	o.Label = fmt.Sprintf("Need %s more", humanize.Comma(int64(o.Needed)))
	return o
}

// Redeem deducts the reward cost. A balance that does not cover the cost
// returns a *ShortfallError and leaves the balance untouched.
func (r *Redeemer) Redeem(rw Reward) (Receipt, error) {
	if !r.ledger.Deduct(rw.Cost) {
		needed := rw.Cost - r.ledger.Balance()
		if needed < 1 {
			needed = 1
		}
		return Receipt{}, &ShortfallError{Reward: rw, Needed: needed}
	}

	receipt := Receipt{
		ID:           uuid.NewString(),
		Player:       r.player,
		Reward:       rw,
		BalanceAfter: r.ledger.Balance(),
	}
	r.logger.Info("reward redeemed", "reward", rw.ID, "cost", rw.Cost, "player", r.player)

	if r.recorder != nil {
		if err := r.recorder.RecordRedemption(receipt); err != nil {
			r.logger.Warn("cannot record redemption", "id", receipt.ID, "error", err)
		}
	}
	return receipt, nil
}
