package storage

import (
	"github.com/vovakirdan/ozembnic-arcade/internal/games/flappy"
	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
)

var (
	_ ledger.Store       = (*Store)(nil)
	_ ledger.Recorder    = (*Store)(nil)
	_ flappy.RunRecorder = (*Store)(nil)
)

// RecordRun stores a finished game.
func (s *Store) RecordRun(r flappy.Result) error {
	return s.SaveRun(Run{
		ID:           r.RunID,
		Player:       r.Player,
		Score:        r.Score,
		PointsEarned: r.Earned,
		Frames:       r.Frames,
		CreatedAt:    r.EndedAt,
	})
}

// RecordRedemption stores a completed redemption.
func (s *Store) RecordRedemption(r ledger.Receipt) error {
	return s.SaveRedemption(Redemption{
		ID:           r.ID,
		Player:       r.Player,
		RewardID:     r.Reward.ID,
		RewardName:   r.Reward.Name,
		Cost:         r.Reward.Cost,
		BalanceAfter: r.BalanceAfter,
	})
}
