package articleapi

import (
	"go.uber.org/zap"

	cachepkg "github.com/inkwell-org/backend/internal/cache"
	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/like"
	"github.com/inkwell-org/backend/internal/orm"
)

type ArticleServer struct {
	log    *zap.Logger
	db     *orm.PostgresClient
	likes  *like.Engine
	cache  *cachepkg.RedisClient
	broker *eventpkg.KafkaClient
}

func NewArticleServer(log *zap.Logger, db *orm.PostgresClient, likes *like.Engine, cache *cachepkg.RedisClient, broker *eventpkg.KafkaClient) *ArticleServer {
	return &ArticleServer{
		log:    log,
		db:     db,
		likes:  likes,
		cache:  cache,
		broker: broker,
	}
}
