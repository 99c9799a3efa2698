package learning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathexplorer/internal/game"
)

var ErrUnknownTopic = errors.New("unknown learning topic")

// Topic identifies a lesson in the learning center.
type Topic string

const (
	TopicAddition    Topic = "SUMA"
	TopicSubtraction Topic = "RESTA"
)

// AllTopics returns the topics in menu order.
func AllTopics() []Topic {
	return []Topic{TopicAddition, TopicSubtraction}
}

// Title returns the heading shown above the lesson.
func (t Topic) Title() string {
	switch t {
	case TopicAddition:
		return "Aprendiendo a Sumar"
	case TopicSubtraction:
		return "El Secreto de la Resta"
	default:
		return string(t)
	}
}

// Game returns the mini-game the "practice now" button starts.
func (t Topic) Game() game.Kind {
	switch t {
	case TopicAddition:
		return game.KindAddition
	case TopicSubtraction:
		return game.KindSubtraction
	default:
		return ""
	}
}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	return t == TopicAddition || t == TopicSubtraction
}

// ParseTopic accepts a topic id or the matching game alias ("suma", "add").
func ParseTopic(s string) (Topic, error) {
	if k, err := game.ParseKind(s); err == nil {
		for _, t := range AllTopics() {
			if t.Game() == k {
				return t, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopic, strings.TrimSpace(s))
}
