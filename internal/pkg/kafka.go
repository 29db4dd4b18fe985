package pkg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer 推送管理操作的审计事件。
// 发帖路径本身不发事件（写入路径不挂副作用）。
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ModerationEvent 审计事件。action 取 ban.add / ban.remove / post.delete / thread.delete
type ModerationEvent struct {
	Action   string    `json:"action"`
	TargetID uint64    `json:"target_id,omitempty"`
	Address  string    `json:"address,omitempty"`
	Operator uint64    `json:"operator"`
	At       time.Time `json:"at"`
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SendEvent 以 JSON 发送事件。key 用 action，同类事件落同一分区
func (p *KafkaProducer) SendEvent(ctx context.Context, ev ModerationEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(ev.Action),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}
