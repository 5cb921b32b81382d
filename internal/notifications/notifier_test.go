package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), uuid.NewString(), "hello"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "hello"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := uuid.NewString()
	received := make(chan string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == UserChannel(userID) {
			received <- payload
		}
	}))

	// PSubscribe needs a moment to be registered before the publish.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, n.PublishUser(ctx, userID, `{"title":"🎉 Produit promu !"}`))

	select {
	case payload := <-received:
		assert.Contains(t, payload, "Produit promu")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published notification")
	}
}

func TestUserChannel(t *testing.T) {
	assert.Equal(t, "notifications:user:abc", UserChannel("abc"))
}

func TestHub_RegisterAndBroadcastTargets(t *testing.T) {
	hub := NewHub()
	userID := uuid.NewString()

	client, err := hub.Register(userID, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(userID))
	assert.False(t, hub.IsOnline(uuid.NewString()))

	hub.Broadcast(userID, "payload")
	select {
	case msg := <-client.Send:
		assert.Equal(t, "payload", string(msg))
	default:
		t.Fatal("expected queued message for registered client")
	}

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(userID))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()
	userID := uuid.NewString()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(userID, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(userID, nil)
	assert.Error(t, err)
}
