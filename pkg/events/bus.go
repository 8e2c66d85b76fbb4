// Package events 提供发往应用协调者的类型化消息
//
// 取代广播式通知：事件只有一个消费者（app 协调者），
// 生产者不知道也不关心谁在处理。
package events

import (
	"fmt"
	"log"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

// Kind 事件类型
type Kind int

const (
	// StoryCompleted 线性剧情第一次走完
	StoryCompleted Kind = iota
	// StartExam 进入剧情之外的考试环节
	StartExam
	// RestartStory 玩家要求从头开始（清除存档）
	RestartStory
)

// String 返回事件类型名
func (k Kind) String() string {
	switch k {
	case StoryCompleted:
		return "StoryCompleted"
	case StartExam:
		return "StartExam"
	case RestartStory:
		return "RestartStory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event 事件
type Event struct {
	Kind  Kind
	Scene story.SceneID // 发出事件时所在的场景
}

// DefaultCapacity 默认缓冲大小
const DefaultCapacity = 16

// Bus 单消费者事件通道
//
// Publish 不阻塞：缓冲已满时丢弃事件并记录日志。
// 协调者每帧调用 Drain 处理积压的事件，处理过程中发布的新事件留到下一帧。
type Bus struct {
	ch chan Event
}

// NewBus 创建事件通道，capacity <= 0 时使用 DefaultCapacity
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{ch: make(chan Event, capacity)}
}

// Publish 发布事件，缓冲已满时返回 false
func (b *Bus) Publish(e Event) bool {
	select {
	case b.ch <- e:
		return true
	default:
		log.Printf("[Events] Warning: bus full, dropped %s (scene=%s)", e.Kind, e.Scene)
		return false
	}
}

// Drain 按发布顺序处理当前积压的事件，返回处理数量
func (b *Bus) Drain(handle func(Event)) int {
	n := len(b.ch)
	for i := 0; i < n; i++ {
		e := <-b.ch
		if handle != nil {
			handle(e)
		}
	}
	return n
}

// Pending 返回尚未处理的事件数量
func (b *Bus) Pending() int {
	return len(b.ch)
}
