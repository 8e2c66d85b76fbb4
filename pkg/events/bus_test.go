package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

func TestBus_DrainInOrder(t *testing.T) {
	b := NewBus(4)
	assert.True(t, b.Publish(Event{Kind: StoryCompleted, Scene: story.Kitchen}))
	assert.True(t, b.Publish(Event{Kind: StartExam, Scene: story.Kitchen}))
	assert.Equal(t, 2, b.Pending())

	var got []Kind
	n := b.Drain(func(e Event) {
		got = append(got, e.Kind)
		assert.Equal(t, story.Kitchen, e.Scene)
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []Kind{StoryCompleted, StartExam}, got)
	assert.Equal(t, 0, b.Pending())
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	b := NewBus(1)
	assert.True(t, b.Publish(Event{Kind: StartExam}))
	assert.False(t, b.Publish(Event{Kind: RestartStory}), "full bus drops the event")

	var got []Kind
	b.Drain(func(e Event) { got = append(got, e.Kind) })
	assert.Equal(t, []Kind{StartExam}, got)
}

// 处理过程中发布的事件留到下一次 Drain
func TestBus_PublishDuringDrain(t *testing.T) {
	b := NewBus(0)
	b.Publish(Event{Kind: StoryCompleted})

	first := b.Drain(func(e Event) {
		if e.Kind == StoryCompleted {
			b.Publish(Event{Kind: StartExam})
		}
	})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, b.Pending())

	var got []Kind
	b.Drain(func(e Event) { got = append(got, e.Kind) })
	assert.Equal(t, []Kind{StartExam}, got)
}

func TestBus_NilHandler(t *testing.T) {
	b := NewBus(2)
	b.Publish(Event{Kind: RestartStory})
	assert.Equal(t, 1, b.Drain(nil))
	assert.Equal(t, 0, b.Pending())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "StoryCompleted", StoryCompleted.String())
	assert.Equal(t, "StartExam", StartExam.String())
	assert.Equal(t, "RestartStory", RestartStory.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
