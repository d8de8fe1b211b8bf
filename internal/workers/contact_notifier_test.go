package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (r *recordingNotifier) NotifyContact(_ context.Context, c models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, c.ID)
	return r.err
}

func (r *recordingNotifier) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func TestContactNotifier_DeliversInOrder(t *testing.T) {
	next := &recordingNotifier{}
	n := NewContactNotifier(next, 4, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		require.NoError(t, n.NotifyContact(context.Background(), models.Contact{ID: id}))
	}

	assert.Eventually(t, func() bool { return len(next.ids()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, next.ids())

	cancel()
	<-done
}

func TestContactNotifier_FullQueue(t *testing.T) {
	n := NewContactNotifier(&recordingNotifier{}, 1, logger.Nop())

	require.NoError(t, n.NotifyContact(context.Background(), models.Contact{ID: "c-1"}))
	err := n.NotifyContact(context.Background(), models.Contact{ID: "c-2"})

	assert.ErrorIs(t, err, ErrNotificationQueueFull)
}

func TestContactNotifier_FlushesOnShutdown(t *testing.T) {
	next := &recordingNotifier{err: errors.New("postmark down")}
	n := NewContactNotifier(next, 4, logger.Nop())

	require.NoError(t, n.NotifyContact(context.Background(), models.Contact{ID: "c-1"}))
	require.NoError(t, n.NotifyContact(context.Background(), models.Contact{ID: "c-2"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Run(ctx)

	assert.ElementsMatch(t, []string{"c-1", "c-2"}, next.ids())
}
