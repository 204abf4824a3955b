package main

import (
	"errors"
	"fmt"
)

var (
	ErrMatcherComplete = errors.New("preference matching already completed")
	ErrUnexpectedTopic = errors.New("answer is not for the current topic")
)

// Matcher asks each catalog topic in order and reports the completed
// mapping to onComplete exactly once.
type Matcher struct {
	topics     []Topic
	answers    map[string]Score
	next       int
	done       bool
	onComplete func(map[string]Score)
}

func NewMatcher(topics []Topic, onComplete func(map[string]Score)) *Matcher {
	return &Matcher{
		topics:     topics,
		answers:    make(map[string]Score, len(topics)),
		onComplete: onComplete,
	}
}

// Current returns the topic awaiting an answer.
func (m *Matcher) Current() (Topic, bool) {
	if m.done || m.next >= len(m.topics) {
		return Topic{}, false
	}
	return m.topics[m.next], true
}

func (m *Matcher) Progress() (answered, total int) {
	return m.next, len(m.topics)
}

func (m *Matcher) Done() bool {
	return m.done
}

// Answer records score for the current topic and reports whether matching
// is now complete.
func (m *Matcher) Answer(topic string, score Score) (bool, error) {
	if m.done {
		return true, ErrMatcherComplete
	}
	if !score.Valid() {
		return false, fmt.Errorf("unknown preference score %q", score)
	}

	current, ok := m.Current()
	if ok && current.Key != topic {
		return false, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTopic, topic, current.Key)
	}
	if ok {
		m.answers[topic] = score
		m.next++
	}

	if m.next < len(m.topics) {
		return false, nil
	}

	m.complete()

	return true, nil
}

func (m *Matcher) complete() {
	m.done = true

	if m.onComplete == nil {
		return
	}

	out := make(map[string]Score, len(m.answers))
	for k, v := range m.answers {
		out[k] = v
	}
	m.onComplete(out)
}
