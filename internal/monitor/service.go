// Package monitor 将运行事件落盘到 SQLite，供监控接口查询。
package monitor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shop-bench/internal/store"
)

// Service 负责持久化监控事件。
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewService 初始化监控服务，创建所需表结构。
func NewService(store *store.Store, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("monitor: store 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// 表结构由 store 在建连时初始化，这里只读写。
	return &Service{
		db:     store.DB(),
		logger: logger,
	}, nil
}

// Record 写入单个事件。
func (s *Service) Record(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("monitor: 序列化事件失败: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO journal_events (id, event_type, payload, created_at) VALUES (?, ?, ?, ?)`,
		event.ID, string(event.Type), string(payload), event.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("monitor: 写入事件失败: %w", err)
	}

	return nil
}

// RecordRound 记录一轮派单。
func (s *Service) RecordRound(ctx context.Context, payload RoundPayload) {
	if err := s.Record(ctx, Event{Type: EventRoundDispatched, Payload: payload}); err != nil {
		s.logger.Warn("记录派单事件失败", zap.Error(err))
	}
}

// RecordReconciliation 记录对账结果。
func (s *Service) RecordReconciliation(ctx context.Context, payload ReconPayload) {
	if err := s.Record(ctx, Event{Type: EventReconciliation, Payload: payload}); err != nil {
		s.logger.Warn("记录对账事件失败", zap.Error(err))
	}
}

// RecordOffline 记录卖家掉线。
func (s *Service) RecordOffline(ctx context.Context, payload OfflinePayload) {
	if err := s.Record(ctx, Event{Type: EventSellerOffline, Payload: payload}); err != nil {
		s.logger.Warn("记录掉线事件失败", zap.Error(err))
	}
}

// RecordRegistration 记录卖家注册。
func (s *Service) RecordRegistration(ctx context.Context, payload RegistrationPayload) {
	if err := s.Record(ctx, Event{Type: EventSellerRegistered, Payload: payload}); err != nil {
		s.logger.Warn("记录注册事件失败", zap.Error(err))
	}
}

// RecordError 记录运行期错误。
func (s *Service) RecordError(ctx context.Context, message string, cause error, context map[string]interface{}) {
	payload := ErrorPayload{Message: message, Context: context}
	if cause != nil {
		payload.Error = cause.Error()
	}
	if err := s.Record(ctx, Event{Type: EventError, Payload: payload}); err != nil {
		s.logger.Warn("记录错误事件失败", zap.Error(err))
	}
}

// ListEvents 按时间倒序返回事件，eventType 为空时不过滤。
func (s *Service) ListEvents(ctx context.Context, eventType EventType, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 200
	}

	query := `SELECT id, event_type, payload, created_at FROM journal_events`
	args := make([]interface{}, 0, 2)
	if eventType != "" {
		query += ` WHERE event_type = ?`
		args = append(args, string(eventType))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monitor: 查询事件失败: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]Event, 0, limit)
	for rows.Next() {
		var (
			event      Event
			rawType    string
			rawPayload string
			createdAt  string
		)
		if err := rows.Scan(&event.ID, &rawType, &rawPayload, &createdAt); err != nil {
			return nil, fmt.Errorf("monitor: 解析事件行失败: %w", err)
		}

		event.Type = EventType(rawType)
		if ts, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			event.Timestamp = ts
		}

		var payload interface{}
		if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
			payload = rawPayload
		}
		event.Payload = payload

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monitor: 遍历事件失败: %w", err)
	}

	return events, nil
}
