package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-admin/internal/realtime"
)

type fakeStore struct {
	url     string
	err     error
	keys    []string
	started chan struct{}
	release chan struct{}
}

func (s *fakeStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress func(sent, total int64)) (string, error) {
	s.keys = append(s.keys, key)
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	data, _ := io.ReadAll(body)
	progress(int64(len(data))/2, size)
	progress(int64(len(data)), size)
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type fakeForm struct {
	slots [4]string
}

func (f *fakeForm) AssignImageURL(url string) (int, bool) {
	for i := range f.slots {
		if f.slots[i] == "" {
			f.slots[i] = url
			return i + 1, true
		}
	}
	return 0, false
}

func newTracker(store Store, form Assigner) (*Tracker, *test.Hook) {
	logger, hook := test.NewNullLogger()
	tr := NewTracker(store, form, realtime.NewHub(16), logrus.NewEntry(logger))
	tr.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return tr, hook
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "products/1700000000123-shirt.png", ObjectKey(at, "shirt.png"))
	assert.Equal(t, "products/1700000000123-shirt.png", ObjectKey(at, "../../etc/shirt.png"))
	assert.Equal(t, "products/1700000000123-tote.jpg", ObjectKey(at, `C:\Users\me\tote.jpg`))
}

func TestTracker_UploadAssignsFirstEmptySlot(t *testing.T) {
	store := &fakeStore{url: "https://cdn.shop.test/products/1700000000123-a.png"}
	form := &fakeForm{slots: [4]string{"https://cdn.shop.test/x.png"}}
	tr, _ := newTracker(store, form)

	sub := tr.Subscribe()
	defer sub.Close()

	res, err := tr.Upload(context.Background(), "a.png", bytes.NewReader([]byte("abcd")), 4, "image/png")
	require.NoError(t, err)
	assert.True(t, res.Assigned)
	assert.Equal(t, 2, res.Slot)
	assert.Equal(t, store.url, form.slots[1])
	assert.Equal(t, []string{"products/1700000000123-a.png"}, store.keys)

	var percents []float64
	var statuses []Status
	for len(sub.C) > 0 {
		p := (<-sub.C).Data.(Progress)
		statuses = append(statuses, p.Status)
		percents = append(percents, p.Percent)
	}
	assert.Equal(t, []Status{StatusUploading, StatusUploading, StatusUploading, StatusDone, StatusIdle}, statuses)
	assert.Equal(t, []float64{0, 50, 100, 100, 0}, percents)
	assert.Equal(t, StatusIdle, tr.Progress().Status)
}

func TestTracker_AllSlotsFull(t *testing.T) {
	form := &fakeForm{slots: [4]string{"1", "2", "3", "4"}}
	tr, _ := newTracker(&fakeStore{url: "https://cdn.shop.test/extra.png"}, form)

	res, err := tr.Upload(context.Background(), "extra.png", bytes.NewReader(nil), 0, "image/png")
	require.NoError(t, err)
	assert.False(t, res.Assigned)
	assert.Equal(t, "https://cdn.shop.test/extra.png", res.URL)
	assert.Equal(t, [4]string{"1", "2", "3", "4"}, form.slots)
}

func TestTracker_FailureResetsAndLeavesForm(t *testing.T) {
	form := &fakeForm{}
	tr, hook := newTracker(&fakeStore{err: errors.New("access denied")}, form)

	_, err := tr.Upload(context.Background(), "a.png", bytes.NewReader([]byte("ab")), 2, "image/png")
	require.Error(t, err)
	assert.Equal(t, [4]string{}, form.slots)
	assert.Equal(t, Progress{Status: StatusIdle}, tr.Progress())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	// The tracker accepts a new upload after a failure.
	tr.store = &fakeStore{url: "https://cdn.shop.test/ok.png"}
	_, err = tr.Upload(context.Background(), "ok.png", bytes.NewReader(nil), 0, "image/png")
	require.NoError(t, err)
}

func TestTracker_RejectsConcurrentUpload(t *testing.T) {
	store := &fakeStore{
		url:     "https://cdn.shop.test/a.png",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	tr, _ := newTracker(store, &fakeForm{})

	done := make(chan error, 1)
	go func() {
		_, err := tr.Upload(context.Background(), "a.png", bytes.NewReader([]byte("a")), 1, "image/png")
		done <- err
	}()
	<-store.started

	_, err := tr.Upload(context.Background(), "b.png", bytes.NewReader([]byte("b")), 1, "image/png")
	assert.ErrorIs(t, err, ErrUploadInFlight)

	close(store.release)
	require.NoError(t, <-done)
}
