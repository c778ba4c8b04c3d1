package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/models"
	"linkhub/internal/store"
	"linkhub/internal/testutil"
)

func TestRegisterUser_FirstWriterWins(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	first, err := s.RegisterUser(ctx, models.User{"email": "ana@example.com", "name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.Name())

	second, err := s.RegisterUser(ctx, models.User{"email": "ana@example.com", "name": "Impostor"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := s.GetUser(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name())
}

func TestRegisterUser_StoresTrimmedEmail(t *testing.T) {
	s, mr := testutil.TestStore(t)
	ctx := context.Background()

	input := models.User{"email": "  ana@example.com ", "name": "Ana"}
	user, err := s.RegisterUser(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "  ana@example.com ", input["email"])

	assert.True(t, mr.Exists("user:ana@example.com"))
	got, err := s.GetUser(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got["email"])
}

func TestRegisterUser_RequiresEmail(t *testing.T) {
	s, _ := testutil.TestStore(t)

	_, err := s.RegisterUser(context.Background(), models.User{"name": "Nobody"})
	assert.ErrorIs(t, err, store.ErrMissingEmail)
}

func TestGetUser_NotFound(t *testing.T) {
	s, _ := testutil.TestStore(t)

	_, err := s.GetUser(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAddLink_AppendsAndSeedsRemaining(t *testing.T) {
	s, mr := testutil.TestStore(t)
	ctx := context.Background()

	links, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: "1", Title: "Blog", URL: "https://blog.example.com", Tag: "general"})
	require.NoError(t, err)
	require.Len(t, links, 1)

	links, err = s.AddLink(ctx, "ana@example.com", &models.Link{ID: "2", Title: "Promo", URL: "https://promo.example.com", Tag: "general", MaxClicks: testutil.Int64(3)})
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "1", links[0].ID)
	assert.Equal(t, "2", links[1].ID)

	remaining, err := mr.Get("snap:2")
	require.NoError(t, err)
	assert.Equal(t, "3", remaining)
	assert.False(t, mr.Exists("snap:1"))
}

func TestAddLink_Validation(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	_, err := s.AddLink(ctx, "", &models.Link{ID: "1"})
	assert.ErrorIs(t, err, store.ErrMissingEmail)

	_, err = s.AddLink(ctx, "ana@example.com", &models.Link{})
	assert.ErrorIs(t, err, store.ErrMissingLinkID)
}

func TestAddLink_ConcurrentAppendsAreNotLost(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: fmt.Sprint(i), URL: "https://x.io", Tag: "general"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	links, err := s.Links(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, links, n)
}

func TestLimitedLinkExhaustion(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	_, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: "snap", Title: "Snap", URL: "https://x.io", Tag: "general", MaxClicks: testutil.Int64(3)})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		active, err := s.ActiveLinks(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Len(t, active, 1, "still active before click %d", i)

		res, err := s.Track(ctx, "snap")
		require.NoError(t, err)
		assert.Equal(t, int64(i), res.Total)
		require.NotNil(t, res.Remaining)
		assert.Equal(t, int64(3-i), *res.Remaining)
	}

	active, err := s.ActiveLinks(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, active)

	stats, err := s.LinkStats(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].IsSnap)
	assert.Equal(t, int64(3), stats[0].Clicks)
	require.NotNil(t, stats[0].Remaining)
	assert.LessOrEqual(t, *stats[0].Remaining, int64(0))
	assert.True(t, stats[0].IsExhausted())
}

func TestTrack_RemainingMayGoNegative(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	_, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: "snap", URL: "https://x.io", MaxClicks: testutil.Int64(1)})
	require.NoError(t, err)

	for range 3 {
		_, err := s.Track(ctx, "snap")
		require.NoError(t, err)
	}

	stats, err := s.LinkStats(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats[0].Clicks)
	assert.Equal(t, int64(-2), *stats[0].Remaining)
}

func TestTrack_ConcurrentClicksStayConsistent(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	const maxClicks, n = 10, 50
	_, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: "snap", URL: "https://x.io", MaxClicks: testutil.Int64(maxClicks)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Track(ctx, "snap")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := s.LinkStats(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(n), stats[0].Clicks)
	require.NotNil(t, stats[0].Remaining)
	assert.Equal(t, int64(maxClicks-n), *stats[0].Remaining)
	assert.True(t, stats[0].IsExhausted())
}

func TestUnlimitedLinkNeverDisappears(t *testing.T) {
	s, mr := testutil.TestStore(t)
	ctx := context.Background()

	_, err := s.AddLink(ctx, "ana@example.com", &models.Link{ID: "blog", URL: "https://x.io", Tag: "general"})
	require.NoError(t, err)

	for range 25 {
		res, err := s.Track(ctx, "blog")
		require.NoError(t, err)
		assert.Nil(t, res.Remaining)
	}

	active, err := s.ActiveLinks(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.False(t, mr.Exists("snap:blog"))

	stats, err := s.LinkStats(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(25), stats[0].Clicks)
	assert.False(t, stats[0].IsSnap)
	assert.Nil(t, stats[0].Remaining)

	clicks, err := s.Clicks(ctx, "blog")
	require.NoError(t, err)
	assert.Equal(t, int64(25), clicks)
}

func TestTrack_RequiresLinkID(t *testing.T) {
	s, _ := testutil.TestStore(t)

	_, err := s.Track(context.Background(), "")
	assert.ErrorIs(t, err, store.ErrMissingLinkID)
}

func TestLinks_EmptyForUnknownOwner(t *testing.T) {
	s, _ := testutil.TestStore(t)
	ctx := context.Background()

	links, err := s.ActiveLinks(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)

	stats, err := s.LinkStats(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestPublish(t *testing.T) {
	s, mr := testutil.TestStore(t)
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sub := rdb.Subscribe(ctx, store.NotificationsChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	n, err := s.Publish(ctx, map[string]string{"event": "view_profile_ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"view_profile_ana@example.com"}`, msg.Payload)
}

func TestNew_Unreachable(t *testing.T) {
	_, err := store.New(context.Background(), "redis://127.0.0.1:1")
	assert.Error(t, err)

	_, err = store.New(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestStoreUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s := store.NewFromClient(rdb)

	_, err := s.GetUser(context.Background(), "ana@example.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrUserNotFound)
}
