// Package audit records every successful mutation as an operator log row.
package audit

import (
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/pkg/common"
)

// TopicEntityChanged is published after a create, update or delete succeeded.
const TopicEntityChanged = "entity.changed"

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event describes one mutation
type Event struct {
	Entity   domain.Entity
	Action   string
	ID       int64
	Operator string
	IP       string
}

// Recorder persists entity.changed events into opr_logs
type Recorder struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewRecorder subscribes a recorder writing to db on bus. Events are handled
// synchronously on the publishing goroutine.
func NewRecorder(db *gorm.DB, bus EventBus.Bus) (*Recorder, error) {
	r := &Recorder{db: db, bus: bus}
	if err := bus.Subscribe(TopicEntityChanged, r.record); err != nil {
		return nil, err
	}
	return r, nil
}

// Close detaches the recorder from the bus
func (r *Recorder) Close() error {
	return r.bus.Unsubscribe(TopicEntityChanged, r.record)
}

func (r *Recorder) record(ev Event) {
	entry := &domain.OprLog{
		ID:        common.UUIDint64(),
		OprName:   ev.Operator,
		OprIp:     ev.IP,
		Entity:    string(ev.Entity),
		EntityID:  ev.ID,
		OptAction: ev.Action,
		OptDesc:   describe(ev),
		OptTime:   time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		zap.L().Error("write operator log",
			zap.String("entity", entry.Entity),
			zap.Int64("id", ev.ID),
			zap.String("action", ev.Action),
			zap.Error(err))
	}
}

func describe(ev Event) string {
	who := ev.Operator
	if who == "" {
		who = "anonymous"
	}
	return who + " " + ev.Action + " " + string(ev.Entity)
}

// Publish emits ev on bus
func Publish(bus EventBus.Bus, ev Event) {
	if bus == nil {
		return
	}
	bus.Publish(TopicEntityChanged, ev)
}
