// Package like implements the toggle-like core: per-user idempotent-by-state
// like flipping with transactional maintenance of the denormalized counters
// on articles and comments.
package like

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/lib"
)

// Kind selects which content type a toggle targets.
type Kind string

const (
	KindArticle Kind = "article"
	KindComment Kind = "comment"
)

// Result is the outcome of a toggle: the target's new counter value and the
// caller's like state after the call.
type Result struct {
	TargetID  uuid.UUID `json:"id"`
	LikeCount int64     `json:"likes"`
	Liked     bool      `json:"liked"`
}

// Store is the persistence gateway the engine runs against. All edge and
// counter mutations issued inside InTransaction commit or roll back as one
// unit. Missing rows surface as gorm.ErrRecordNotFound; a violated edge
// uniqueness constraint surfaces as gorm.ErrDuplicatedKey.
type Store interface {
	InTransaction(ctx context.Context, fn func(store Store) error) error
	SelectLikeEdge(kind Kind, targetID, userID uuid.UUID) error
	InsertLikeEdge(kind Kind, targetID, userID uuid.UUID) error
	DeleteLikeEdge(kind Kind, targetID, userID uuid.UUID) error
	AdjustLikeCount(kind Kind, targetID uuid.UUID, delta int) (int64, error)
	CountLikeEdges(kind Kind, targetID uuid.UUID) (int64, error)
}

// Broker publishes domain events. May be left nil to disable publishing.
type Broker interface {
	WriteMessage(ctx context.Context, event string, message interface{}) error
}

// errConcurrentToggle marks a toggle that lost the race against another
// toggle on the same pair: either the insert hit the unique edge constraint
// or the delete found the edge already gone.
var errConcurrentToggle = errors.New("concurrent toggle on the same pair")

type Engine struct {
	store  Store
	log    *zap.Logger
	broker Broker
}

func NewEngine(store Store, log *zap.Logger, broker Broker) *Engine {
	return &Engine{
		store:  store,
		log:    log,
		broker: broker,
	}
}

// Toggle flips the like state for (userID, targetID) and returns the new
// counter and state. Two calls from the same user return to the starting
// state; a call is never a no-op. A toggle that loses an insert or delete
// race is re-run once so it observes the winner's edge.
func (e *Engine) Toggle(ctx context.Context, userID, targetID uuid.UUID, kind Kind) (*Result, error) {
	if userID == uuid.Nil {
		return nil, lib.ErrUnauthenticated
	}

	result, err := e.toggleOnce(ctx, userID, targetID, kind)
	if errors.Is(err, errConcurrentToggle) {
		result, err = e.toggleOnce(ctx, userID, targetID, kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ErrNotFound
		}
		if errors.Is(err, errConcurrentToggle) {
			return nil, fmt.Errorf("%w: toggle kept losing to concurrent writers", lib.ErrPersistenceFailure)
		}
		return nil, err
	}

	togglesTotal.WithLabelValues(string(kind), strconv.FormatBool(result.Liked)).Inc()
	e.publishToggled(ctx, userID, kind, result)

	return result, nil
}

func (e *Engine) toggleOnce(ctx context.Context, userID, targetID uuid.UUID, kind Kind) (*Result, error) {
	var result *Result

	err := e.store.InTransaction(ctx, func(tx Store) error {
		delta := 0
		liked := false

		err := tx.SelectLikeEdge(kind, targetID, userID)
		switch {
		case err == nil:
			// Liked -> NotLiked
			if err := tx.DeleteLikeEdge(kind, targetID, userID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errConcurrentToggle
				}
				return err
			}
			delta = -1
		case errors.Is(err, gorm.ErrRecordNotFound):
			// NotLiked -> Liked
			if err := tx.InsertLikeEdge(kind, targetID, userID); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errConcurrentToggle
				}
				return err
			}
			delta = 1
			liked = true
		default:
			return err
		}

		count, err := tx.AdjustLikeCount(kind, targetID, delta)
		if err != nil {
			// Target gone: roll the edge mutation back too.
			return err
		}

		result = &Result{
			TargetID:  targetID,
			LikeCount: count,
			Liked:     liked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (e *Engine) publishToggled(ctx context.Context, userID uuid.UUID, kind Kind, result *Result) {
	if e.broker == nil {
		return
	}
	message := eventpkg.LikeToggledMessage{
		Kind:     string(kind),
		TargetID: result.TargetID.String(),
		UserID:   userID.String(),
		Liked:    result.Liked,
	}
	if err := e.broker.WriteMessage(ctx, eventpkg.LIKE_TOGGLED, message); err != nil {
		e.log.Error("error publishing like toggled event", zap.Error(err))
	}
}
