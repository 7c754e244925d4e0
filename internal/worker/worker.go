package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/like"
	ormpkg "github.com/inkwell-org/backend/internal/orm"
)

// Worker consumes domain events. Its main job is counter reconciliation:
// after every toggle it re-derives the target's like count from the edge set,
// so a drifted counter heals instead of staying wrong behind the zero floor.
type Worker struct {
	context      context.Context
	cancel       func()
	waitGroup    sync.WaitGroup
	logger       *zap.Logger
	router       *Router
	brokerClient *eventpkg.KafkaClient
	database     *ormpkg.PostgresClient
}

func NewWorker(logger *zap.Logger, brokerClient *eventpkg.KafkaClient, database *ormpkg.PostgresClient) *Worker {
	context, cancel := context.WithCancel(context.Background())
	this := &Worker{
		context:      context,
		cancel:       cancel,
		logger:       logger,
		brokerClient: brokerClient,
		database:     database,
	}
	this.router = NewRouter(
		map[string][]EventHandler{
			eventpkg.LIKE_TOGGLED: {
				this.LikeToggledHandler,
			},
			eventpkg.ARTICLE_CREATED: {
				this.ArticleCreatedHandler,
			},
			eventpkg.COMMENT_CREATED: {
				this.CommentCreatedHandler,
			},
		},
	)
	return this
}

func (this *Worker) Start() error {
	this.logger.Info("starting reconciliation worker")

	this.waitGroup.Add(1)
	go this.worker()
	return nil
}

func (this *Worker) Stop() error {
	this.logger.Info("stopping reconciliation worker")

	this.cancel()
	this.waitGroup.Wait()
	return nil
}

func (this *Worker) worker() {
	defer this.waitGroup.Done()

	for {
		select {
		case <-this.context.Done():
			return
		case <-time.After(1 * time.Millisecond):
		}

		event, data, err := this.brokerClient.ReadMessage(this.context)
		if err != nil {
			if this.context.Err() != nil {
				return
			}
			this.logger.Error("error receiving kafka message", zap.Error(err))
			continue
		}

		err = this.router.Handle(event, []byte(data))
		if err != nil {
			this.logger.Error("error handling kafka message", zap.String("event", event), zap.Error(err))
			continue
		}
	}
}

// LikeToggledHandler reconciles the denormalized like count of the toggled
// target against its edge set.
func (this *Worker) LikeToggledHandler(data []byte) error {
	var message eventpkg.LikeToggledMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(message.TargetID)
	if err != nil {
		return err
	}
	kind := like.Kind(message.Kind)

	stored, err := this.database.SelectLikeCount(kind, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Target deleted after the toggle; nothing to reconcile.
			return nil
		}
		return err
	}
	reconciled, err := this.database.ReconcileLikeCount(kind, targetID)
	if err != nil {
		return err
	}

	if stored != reconciled {
		this.logger.Warn("healed drifted like count",
			zap.String("kind", message.Kind),
			zap.String("target_id", message.TargetID),
			zap.Int64("stored", stored),
			zap.Int64("reconciled", reconciled),
		)
	}
	return nil
}

func (this *Worker) ArticleCreatedHandler(data []byte) error {
	var message eventpkg.ArticleCreatedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("article created", zap.String("id", message.ID), zap.String("author_id", message.AuthorID))
	return nil
}

func (this *Worker) CommentCreatedHandler(data []byte) error {
	var message eventpkg.CommentCreatedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("comment created", zap.String("id", message.ID), zap.String("article_id", message.ArticleID))
	return nil
}
