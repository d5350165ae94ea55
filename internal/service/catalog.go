package service

import (
	"context"
	"sync"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

// EventCatalog — lookup мероприятия по ID (коллаборатор извне).
type EventCatalog interface {
	Get(ctx context.Context, id string) (*domain.Event, error)
}

// StaticCatalog — in-memory каталог для dev-режима (пустой postgres.dsn) и тестов.
type StaticCatalog struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

func NewStaticCatalog(events ...domain.Event) *StaticCatalog {
	c := &StaticCatalog{events: make(map[string]domain.Event, len(events))}
	for _, ev := range events {
		c.events[ev.ID] = ev
	}
	return c
}

func (c *StaticCatalog) Add(ev domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[ev.ID] = ev
}

func (c *StaticCatalog) Get(_ context.Context, id string) (*domain.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ev, ok := c.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &ev, nil
}
