package service

import "github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"

// Publisher fans task events out to real-time subscribers. Publish must not
// block on slow subscribers.
type Publisher interface {
	Publish(ev domain.TaskEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.TaskEvent) {}
