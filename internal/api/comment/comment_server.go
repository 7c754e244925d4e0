package commentapi

import (
	"go.uber.org/zap"

	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/like"
	"github.com/inkwell-org/backend/internal/orm"
)

type CommentServer struct {
	log    *zap.Logger
	db     *orm.PostgresClient
	likes  *like.Engine
	broker *eventpkg.KafkaClient
}

func NewCommentServer(log *zap.Logger, db *orm.PostgresClient, likes *like.Engine, broker *eventpkg.KafkaClient) *CommentServer {
	return &CommentServer{
		log:    log,
		db:     db,
		likes:  likes,
		broker: broker,
	}
}
