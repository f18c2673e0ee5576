package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

type staticSource []models.StockItem

func (s staticSource) Items() []models.StockItem { return s }

type recordingMirror struct {
	written [][]models.StockItem
	err     error
}

func (m *recordingMirror) Write(_ context.Context, items []models.StockItem) error {
	m.written = append(m.written, items)
	return m.err
}

type recordingNotifier struct {
	texts []string
}

func (n *recordingNotifier) SendText(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return nil
}

var items = staticSource{
	{ID: "1", Name: "Flour", Category: "Baking", Quantity: 5, Unit: "kg", DateAdded: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	_, err := NewScheduler(config.ScheduleConfig{Timezone: "Nowhere/Land"}, items, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestStart_RegistersConfiguredJobs(t *testing.T) {
	cfg := config.ScheduleConfig{MirrorCron: "*/5 * * * *", SummaryCron: "0 8 * * *", Timezone: "UTC"}
	s, err := NewScheduler(cfg, items, &recordingMirror{}, reporting.NewService(items, nil), &recordingNotifier{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 2, s.Jobs())
}

func TestStart_SkipsDisabledJobs(t *testing.T) {
	cfg := config.ScheduleConfig{MirrorCron: "*/5 * * * *", SummaryCron: "0 8 * * *", Timezone: "UTC"}
	s, err := NewScheduler(cfg, items, nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Zero(t, s.Jobs())
}

func TestStart_InvalidCron(t *testing.T) {
	cfg := config.ScheduleConfig{MirrorCron: "every tuesday", Timezone: "UTC"}
	s, err := NewScheduler(cfg, items, &recordingMirror{}, nil, nil, nil)
	require.NoError(t, err)

	assert.Error(t, s.Start())
}

func TestMirrorInventory(t *testing.T) {
	mirror := &recordingMirror{}
	s, err := NewScheduler(config.ScheduleConfig{Timezone: "UTC"}, items, mirror, nil, nil, nil)
	require.NoError(t, err)

	s.mirrorInventory()
	require.Len(t, mirror.written, 1)
	assert.Equal(t, []models.StockItem(items), mirror.written[0])

	mirror.err = errors.New("sheet locked")
	s.mirrorInventory()
	assert.Len(t, mirror.written, 2)
}

func TestSendSummary(t *testing.T) {
	notifier := &recordingNotifier{}
	s, err := NewScheduler(config.ScheduleConfig{Timezone: "UTC"}, items, nil, reporting.NewService(items, nil), notifier, nil)
	require.NoError(t, err)

	s.sendSummary()
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "1 items across 1 categories")
	assert.Contains(t, notifier.texts[0], "5 kg")
}
