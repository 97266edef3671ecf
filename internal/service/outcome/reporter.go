package outcome

import (
	"log"

	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

// GameRepository persists a finished game together with the rating changes in
// one transaction.
type GameRepository interface {
	SaveOutcome(o domain.Outcome, winnerNewRating, loserNewRating int) error
}

// UserRepository supplies current ratings.
type UserRepository interface {
	GetRating(userID int64) (int, error)
}

// IdentityCacheInvalidator drops cached identities whose rating just changed.
type IdentityCacheInvalidator interface {
	InvalidateIdentity(userID int64)
}

// Reporter consumes session terminal events and records them. It runs
// server-side and is the only writer of game results: the session emits the
// event exactly once, so every finished match is persisted exactly once no
// matter what either client does afterwards.
type Reporter struct {
	games       GameRepository
	users       UserRepository
	invalidator IdentityCacheInvalidator // Optional, can be nil
}

func NewReporter(games GameRepository, users UserRepository, invalidator IdentityCacheInvalidator) *Reporter {
	return &Reporter{games: games, users: users, invalidator: invalidator}
}

// Report persists the outcome and applies the Elo adjustment for both
// players. Failures are logged; the session is already gone and there is no
// client to surface them to.
func (r *Reporter) Report(o domain.Outcome) {
	loserID := o.Player2ID
	if o.WinnerID == o.Player2ID {
		loserID = o.Player1ID
	}

	winnerRating, err := r.users.GetRating(o.WinnerID)
	if err != nil {
		log.Printf("[OUTCOME] Rating lookup failed for winner %d in game %s: %v", o.WinnerID, o.GameID, err)
		return
	}
	loserRating, err := r.users.GetRating(loserID)
	if err != nil {
		log.Printf("[OUTCOME] Rating lookup failed for loser %d in game %s: %v", loserID, o.GameID, err)
		return
	}

	newWinner, newLoser := domain.NewRatings(winnerRating, loserRating)

	if err := r.games.SaveOutcome(o, newWinner, newLoser); err != nil {
		log.Printf("[OUTCOME] Error saving game %s: %v", o.GameID, err)
		return
	}
	log.Printf("[OUTCOME] Game %s saved: winner %s, ratings %d->%d and %d->%d",
		o.GameID, o.WinnerUsername, winnerRating, newWinner, loserRating, newLoser)

	if r.invalidator != nil {
		r.invalidator.InvalidateIdentity(o.Player1ID)
		r.invalidator.InvalidateIdentity(o.Player2ID)
	}
}
