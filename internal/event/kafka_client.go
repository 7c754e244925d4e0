package event

import (
	"context"
	"encoding/json"
	"errors"
	"net"

	"github.com/segmentio/kafka-go"
)

// Event names carried as the kafka message key.
const (
	LIKE_TOGGLED    = "like.toggled"
	ARTICLE_CREATED = "article.created"
	COMMENT_CREATED = "comment.created"
)

type LikeToggledMessage struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
	UserID   string `json:"user_id"`
	Liked    bool   `json:"liked"`
}

type ArticleCreatedMessage struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
}

type CommentCreatedMessage struct {
	ID        string `json:"id"`
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
}

// KafkaClient wraps one topic: the API publishes, the worker consumes within
// a consumer group.
type KafkaClient struct {
	writer *kafka.Writer
	reader *kafka.Reader
}

func NewKafkaClient(host string, port string, topic string, group string) (*KafkaClient, error) {
	if host == "" || topic == "" {
		return nil, errors.New("kafka host and topic are required")
	}
	address := net.JoinHostPort(host, port)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(address),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{address},
		Topic:   topic,
		GroupID: group,
	})

	return &KafkaClient{
		writer: writer,
		reader: reader,
	}, nil
}

// WriteMessage publishes message under the event name.
func (c *KafkaClient) WriteMessage(ctx context.Context, event string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return c.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: payload,
	})
}

// ReadMessage blocks until the next message and returns its event name and
// raw payload.
func (c *KafkaClient) ReadMessage(ctx context.Context) (string, string, error) {
	message, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return "", "", err
	}
	return string(message.Key), string(message.Value), nil
}

func (c *KafkaClient) Close() error {
	writerErr := c.writer.Close()
	readerErr := c.reader.Close()
	if writerErr != nil {
		return writerErr
	}
	return readerErr
}
