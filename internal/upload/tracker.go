// Package upload runs the image upload side-channel of the product form.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/realtime"
)

// ErrUploadInFlight rejects a second upload while one is running.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// Topic is the realtime topic progress is published under.
const Topic = "upload"

// Store writes an object and returns its public URL. progress is called
// with bytes sent so far and the total.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress func(sent, total int64)) (string, error)
}

// Assigner places an uploaded URL into the form.
type Assigner interface {
	AssignImageURL(url string) (int, bool)
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// Progress is published on every change of the tracker.
type Progress struct {
	Status  Status  `json:"status"`
	Key     string  `json:"key,omitempty"`
	Percent float64 `json:"percent"`
	URL     string  `json:"url,omitempty"`
}

type Result struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Slot     int    `json:"slot,omitempty"`
	Assigned bool   `json:"assigned"`
}

// ObjectKey names an upload started at t.
func ObjectKey(t time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("products/%d-%s", t.UnixMilli(), base)
}

// Tracker allows one upload at a time and reports its progress.
type Tracker struct {
	mu       sync.Mutex
	inFlight bool
	current  Progress

	store Store
	form  Assigner
	hub   *realtime.Hub
	log   *logrus.Entry
	now   func() time.Time
}

func NewTracker(store Store, form Assigner, hub *realtime.Hub, log *logrus.Entry) *Tracker {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Tracker{
		current: Progress{Status: StatusIdle},
		store:   store,
		form:    form,
		hub:     hub,
		log:     log,
		now:     time.Now,
	}
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Subscribe streams progress updates until the subscription is closed.
func (t *Tracker) Subscribe() *realtime.Subscription {
	return t.hub.Subscribe(Topic)
}

func (t *Tracker) set(p Progress) {
	t.mu.Lock()
	t.current = p
	t.mu.Unlock()
	t.hub.Publish(Topic, p)
}

// Upload sends body to the store under a fresh key. On success the URL goes
// into the first empty image slot of the form. On failure the tracker
// returns to idle and the form is left alone.
func (t *Tracker) Upload(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (*Result, error) {
	t.mu.Lock()
	if t.inFlight {
		t.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	t.inFlight = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	key := ObjectKey(t.now(), filename)
	t.set(Progress{Status: StatusUploading, Key: key})

	url, err := t.store.Put(ctx, key, body, size, contentType, func(sent, total int64) {
		if total <= 0 {
			return
		}
		t.set(Progress{Status: StatusUploading, Key: key, Percent: float64(sent) / float64(total) * 100})
	})
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err,
		}).Error("Image upload failed")
		t.hub.Publish(Topic, Progress{Status: StatusFailed, Key: key})
		t.set(Progress{Status: StatusIdle})
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	result := &Result{URL: url, Key: key}
	result.Slot, result.Assigned = t.form.AssignImageURL(url)

	t.log.WithFields(logrus.Fields{
		"key":      key,
		"slot":     result.Slot,
		"assigned": result.Assigned,
	}).Info("Image uploaded")

	t.hub.Publish(Topic, Progress{Status: StatusDone, Key: key, Percent: 100, URL: url})
	t.set(Progress{Status: StatusIdle})
	return result, nil
}
