package audit

import (
	"testing"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/testutil"
)

func TestRecorderWritesOprLog(t *testing.T) {
	db := testutil.OpenDB(t)
	bus := EventBus.New()
	rec, err := NewRecorder(db, bus)
	require.NoError(t, err)

	Publish(bus, Event{
		Entity:   domain.EntityOrder,
		Action:   ActionCreate,
		ID:       42,
		Operator: "smith@gmail.com",
		IP:       "127.0.0.1",
	})

	var logs []domain.OprLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.NotZero(t, logs[0].ID)
	assert.Equal(t, "order", logs[0].Entity)
	assert.Equal(t, int64(42), logs[0].EntityID)
	assert.Equal(t, "create", logs[0].OptAction)
	assert.Equal(t, "smith@gmail.com", logs[0].OprName)
	assert.Equal(t, "smith@gmail.com create order", logs[0].OptDesc)

	require.NoError(t, rec.Close())
	Publish(bus, Event{Entity: domain.EntityOrder, Action: ActionDelete, ID: 42})

	var count int64
	require.NoError(t, db.Model(&domain.OprLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPublishWithoutBus(t *testing.T) {
	assert.NotPanics(t, func() {
		Publish(nil, Event{Entity: domain.EntityCategory, Action: ActionUpdate, ID: 1})
	})
}
