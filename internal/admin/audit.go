package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const auditCollection = "adminauditlogs"

// auditWriteTimeout bounds how long an audit insert may take so a sick
// database cannot stall an authentication flow.
const auditWriteTimeout = 5 * time.Second

// Event is one security-relevant occurrence worth recording.
type Event struct {
	AdminID   string
	Action    string
	IP        string
	UserAgent string
	Meta      map[string]any
}

// Sink receives audit events. Implementations are best-effort: Record never
// returns an error because an audit failure must not abort the flow that
// produced the event.
type Sink interface {
	Record(ctx context.Context, event Event)
}

type auditRecord struct {
	ID        string         `bson:"_id"`
	AdminID   string         `bson:"adminId"`
	Action    string         `bson:"action"`
	IP        string         `bson:"ip"`
	UserAgent string         `bson:"userAgent"`
	Meta      map[string]any `bson:"meta,omitempty"`
	CreatedAt time.Time      `bson:"createdAt"`
}

// MongoSink appends audit events to a MongoDB collection.
type MongoSink struct {
	coll *mongo.Collection
	log  *slog.Logger
}

// NewMongoSink creates a sink over db's audit log collection.
func NewMongoSink(db *mongo.Database, log *slog.Logger) *MongoSink {
	if log == nil {
		log = slog.Default()
	}
	return &MongoSink{coll: db.Collection(auditCollection), log: log}
}

// Record inserts the event. Failures are logged and swallowed; the write uses
// a detached context so a cancelled request still gets its event persisted.
func (s *MongoSink) Record(ctx context.Context, event Event) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	record := auditRecord{
		ID:        uuid.New().String(),
		AdminID:   event.AdminID,
		Action:    event.Action,
		IP:        orUnknown(event.IP),
		UserAgent: orUnknown(event.UserAgent),
		Meta:      event.Meta,
		CreatedAt: time.Now(),
	}

	if _, err := s.coll.InsertOne(writeCtx, record); err != nil {
		s.log.Warn("failed to record audit event",
			slog.String("action", event.Action),
			slog.String("admin_id", event.AdminID),
			slog.Any("error", err),
		)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
