// Package memory provides an in-memory store.Store (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/store"
)

type Memory struct {
	mu        sync.RWMutex
	holidays  map[string]calendar.Holiday
	calendars map[string]calendar.WeekendConfig
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		holidays:  make(map[string]calendar.Holiday),
		calendars: make(map[string]calendar.WeekendConfig),
	}
}

func (m *Memory) SaveHoliday(_ context.Context, h calendar.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h.Date = calendar.DateOf(h.Date)
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.holidays[id]; !ok {
		return store.ErrHolidayNotFound
	}
	delete(m.holidays, id)
	return nil
}

func (m *Memory) ListHolidays(_ context.Context, companyID string) ([]calendar.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []calendar.Holiday
	for _, h := range m.holidays {
		if h.CompanyID == companyID || h.CompanyID == "" {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) SaveCalendar(_ context.Context, companyID string, cfg calendar.WeekendConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg.Days = append([]time.Weekday(nil), cfg.Days...)
	m.calendars[companyID] = cfg
	return nil
}

func (m *Memory) GetCalendar(_ context.Context, companyID string) (calendar.WeekendConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.calendars[companyID]
	if !ok {
		return calendar.WeekendConfig{}, store.ErrCalendarNotFound
	}
	cfg.Days = append([]time.Weekday(nil), cfg.Days...)
	return cfg, nil
}
