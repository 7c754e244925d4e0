package categoryapi

import (
	"go.uber.org/zap"

	"github.com/inkwell-org/backend/internal/orm"
)

type CategoryServer struct {
	log *zap.Logger
	db  *orm.PostgresClient
}

func NewCategoryServer(log *zap.Logger, db *orm.PostgresClient) *CategoryServer {
	return &CategoryServer{
		log: log,
		db:  db,
	}
}
