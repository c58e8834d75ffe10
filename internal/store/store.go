// internal/store/store.go

// Package store persists conversations, orders, room service requests, and
// the room inventory in PostgreSQL, with an optional Redis cache in front of
// the per-conversation context lookups. Every read the agents issue treats an
// error as "no history"; the store itself reports errors faithfully and lets
// callers decide.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// Store is the concrete collaborator behind the agent pipeline.
type Store struct {
	db     *sql.DB
	cache  *contextCache
	logger logger.Logger
}

// New creates a Store. redisClient may be nil; lookups then always hit
// postgres.
func New(db *sql.DB, redisClient *redis.Client, log logger.Logger) *Store {
	s := &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
	if redisClient != nil {
		s.cache = newContextCache(redisClient)
	}
	return s
}

// Migrate creates the schema when missing.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversation_messages (
			id BIGSERIAL PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			department TEXT,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_messages_conv ON conversation_messages (conversation_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS restaurant_orders (
			id BIGSERIAL PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			room_number TEXT NOT NULL,
			items_json TEXT NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			display_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurant_orders_conv ON restaurant_orders (conversation_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS room_service_requests (
			id BIGSERIAL PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			room_number TEXT NOT NULL,
			request_type TEXT NOT NULL,
			status TEXT NOT NULL,
			display_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_room_service_requests_conv ON room_service_requests (conversation_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			room_number TEXT PRIMARY KEY,
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SeedRooms inserts the initial inventory when the rooms table is empty.
func (s *Store) SeedRooms(ctx context.Context, rooms []string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, number := range rooms {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO rooms (room_number, available) VALUES ($1, TRUE) ON CONFLICT DO NOTHING`,
			number,
		); err != nil {
			return fmt.Errorf("seed room %s: %w", number, err)
		}
	}
	s.logger.Info("seeded room inventory", map[string]interface{}{"rooms": len(rooms)})
	return nil
}

// LastDepartment returns the department of the most recent agent-authored
// message in the conversation, or "" when none exists.
func (s *Store) LastDepartment(ctx context.Context, conversationID string) (string, error) {
	if s.cache != nil {
		if dept, ok := s.cache.lastDepartment(ctx, conversationID); ok {
			return dept, nil
		}
	}
	var dept sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT department FROM conversation_messages
		 WHERE conversation_id = $1 AND sender = $2
		 ORDER BY created_at DESC LIMIT 1`,
		conversationID, models.SenderAgent,
	).Scan(&dept)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last department: %w", err)
	}
	if s.cache != nil && dept.String != "" {
		s.cache.setLastDepartment(ctx, conversationID, dept.String)
	}
	return dept.String, nil
}

// LastRoom returns the room number on the most recent order or room service
// request for the conversation, or "" when none exists.
func (s *Store) LastRoom(ctx context.Context, conversationID string, kind models.RecordKind) (string, error) {
	if s.cache != nil {
		if room, ok := s.cache.lastRoom(ctx, conversationID, kind); ok {
			return room, nil
		}
	}
	table := "restaurant_orders"
	if kind == models.RecordKindRoomService {
		table = "room_service_requests"
	}
	var room string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT room_number FROM %s WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT 1`, table),
		conversationID,
	).Scan(&room)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last room: %w", err)
	}
	if s.cache != nil && room != "" {
		s.cache.setLastRoom(ctx, conversationID, kind, room)
	}
	return room, nil
}

// RecentUserMessages returns up to limit user-authored message bodies for the
// conversation, newest first.
func (s *Store) RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM conversation_messages
		 WHERE conversation_id = $1 AND sender = $2
		 ORDER BY created_at DESC LIMIT $3`,
		conversationID, models.SenderUser, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent user messages: %w", err)
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}

// AvailableRooms lists the room numbers currently marked available.
func (s *Store) AvailableRooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT room_number FROM rooms WHERE available = TRUE ORDER BY room_number`,
	)
	if err != nil {
		return nil, fmt.Errorf("available rooms: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		numbers = append(numbers, number)
	}
	return numbers, rows.Err()
}

// SaveOrder persists a priced order. TotalAmount is computed here as the
// exact sum over the provided lines so the invariant holds regardless of the
// caller.
func (s *Store) SaveOrder(ctx context.Context, items []models.OrderLine, roomNumber, conversationID string) (*models.OrderPayload, error) {
	total := 0.0
	for _, line := range items {
		total += line.Price * float64(line.Quantity)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	displayID := newDisplayID("RES", roomNumber)

	var (
		id        int64
		createdAt time.Time
	)
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO restaurant_orders (conversation_id, room_number, items_json, total_amount, status, display_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		conversationID, roomNumber, string(itemsJSON), total, models.StatusPending, displayID,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if s.cache != nil {
		s.cache.setLastRoom(ctx, conversationID, models.RecordKindOrder, roomNumber)
	}
	metrics.OrdersPersisted.Inc()

	return &models.OrderPayload{
		ID:          id,
		DisplayID:   displayID,
		RoomNumber:  roomNumber,
		Items:       items,
		TotalAmount: total,
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
	}, nil
}

// SaveRoomService persists an amenity/housekeeping request.
func (s *Store) SaveRoomService(ctx context.Context, requestType, roomNumber, conversationID string) (*models.RoomServicePayload, error) {
	displayID := newDisplayID("RSV", roomNumber)

	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO room_service_requests (conversation_id, room_number, request_type, status, display_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		conversationID, roomNumber, requestType, models.StatusPending, displayID,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert room service request: %w", err)
	}

	if s.cache != nil {
		s.cache.setLastRoom(ctx, conversationID, models.RecordKindRoomService, roomNumber)
	}
	metrics.RoomServicePersisted.Inc()

	return &models.RoomServicePayload{
		ID:          id,
		DisplayID:   displayID,
		RoomNumber:  roomNumber,
		RequestType: requestType,
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
	}, nil
}

// SaveMessage appends a chat turn to the conversation log.
func (s *Store) SaveMessage(ctx context.Context, msg models.ConversationMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_messages (conversation_id, sender, department, content)
		 VALUES ($1, $2, NULLIF($3, ''), $4)`,
		msg.ConversationID, msg.Sender, msg.Department, msg.Content,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if s.cache != nil && msg.Sender == models.SenderAgent && msg.Department != "" {
		s.cache.setLastDepartment(ctx, msg.ConversationID, msg.Department)
	}
	return nil
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.OrderPayload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_id, room_number, items_json, total_amount, status, created_at
		 FROM restaurant_orders ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderPayload
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// ListRoomServiceRequests returns all requests, newest first.
func (s *Store) ListRoomServiceRequests(ctx context.Context) ([]models.RoomServicePayload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_id, room_number, request_type, status, created_at
		 FROM room_service_requests ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list room service requests: %w", err)
	}
	defer rows.Close()

	var requests []models.RoomServicePayload
	for rows.Next() {
		var req models.RoomServicePayload
		if err := rows.Scan(&req.ID, &req.DisplayID, &req.RoomNumber, &req.RequestType, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room service request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ErrNotFound is returned by the status update operations when the record
// does not exist.
var ErrNotFound = errors.New("record not found")

// UpdateOrderStatus moves an order through its lifecycle.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.OrderPayload, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE restaurant_orders SET status = $1 WHERE id = $2
		 RETURNING id, display_id, room_number, items_json, total_amount, status, created_at`,
		status, id,
	)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return order, err
}

// UpdateRoomServiceStatus moves a request through its lifecycle.
func (s *Store) UpdateRoomServiceStatus(ctx context.Context, id int64, status string) (*models.RoomServicePayload, error) {
	var req models.RoomServicePayload
	err := s.db.QueryRowContext(ctx,
		`UPDATE room_service_requests SET status = $1 WHERE id = $2
		 RETURNING id, display_id, room_number, request_type, status, created_at`,
		status, id,
	).Scan(&req.ID, &req.DisplayID, &req.RoomNumber, &req.RequestType, &req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update room service status: %w", err)
	}
	return &req, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.OrderPayload, error) {
	var (
		order     models.OrderPayload
		itemsJSON string
	)
	if err := row.Scan(&order.ID, &order.DisplayID, &order.RoomNumber, &itemsJSON, &order.TotalAmount, &order.Status, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &order, nil
}

// newDisplayID builds the human-facing label, e.g. RES-104-3FA2B1. It is
// never used for lookups.
func newDisplayID(prefix, roomNumber string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, roomNumber, suffix)
}
