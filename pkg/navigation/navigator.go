// Package navigation 决定当前是哪个场景，并拥有只向前的历史记录
package navigation

import (
	"errors"
	"fmt"
	"log"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

var (
	// ErrInvalidScene 目标不是合法的场景标识
	ErrInvalidScene = errors.New("invalid scene")
	// ErrAlreadyVisited 目标是当前场景或已经访问过（剧情只向前）
	ErrAlreadyVisited = errors.New("scene already visited")
)

// Presenter 宿主呈现层（game.SceneManager）
type Presenter interface {
	Present(scene game.Scene, fade float64)
}

// Checkpointer 导航需要的存档操作（game.CheckpointStore）
type Checkpointer interface {
	SaveScene(ordinal int) error
	SetStoryCompleted(completed bool) error
}

// Navigator 场景导航器
//
// current/history 只由导航器自己的方法修改（单写者），
// 在应用启动时创建，显式传给场景工厂，生命周期与应用相同。
//
// 不变量：
//   - current 始终是合法的场景标识
//   - history 只包含之前的 current，不包含当前场景
type Navigator struct {
	current story.SceneID
	history []story.SceneID

	host    Presenter
	factory game.SceneFactory
	store   Checkpointer
	bus     *events.Bus

	fadeDuration float64

	// 场景构建失败是致命错误，由协调者在下一帧返回给游戏循环
	fatal error
}

// New 创建导航器
//
// 参数：
//   - host: 呈现场景的宿主
//   - factory: 场景标识 → 场景实例的映射
//   - store: 存档，可为 nil（不保存）
//   - bus: 事件通道，可为 nil（FinishStory 不发事件）
func New(host Presenter, factory game.SceneFactory, store Checkpointer, bus *events.Bus) *Navigator {
	return &Navigator{
		current:      story.First(),
		host:         host,
		factory:      factory,
		store:        store,
		bus:          bus,
		fadeDuration: config.TransitionFadeDuration,
	}
}

// SetFadeDuration 设置切换场景的交叉淡化时长，0 表示直接切换
func (n *Navigator) SetFadeDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	n.fadeDuration = seconds
}

// Current 返回当前场景
func (n *Navigator) Current() story.SceneID {
	return n.current
}

// History 返回历史记录的副本
func (n *Navigator) History() []story.SceneID {
	out := make([]story.SceneID, len(n.history))
	copy(out, n.history)
	return out
}

// Err 返回致命的场景构建错误
func (n *Navigator) Err() error {
	return n.fatal
}

// Start 启动时呈现初始场景（不记录历史，不淡化）
func (n *Navigator) Start(id story.SceneID) error {
	if !id.Valid() {
		return fmt.Errorf("start at %s: %w", id, ErrInvalidScene)
	}
	n.current = id
	n.history = n.history[:0]
	log.Printf("[Navigator] Start at %s", id)
	return n.present(0)
}

// NavigateTo 切换到目标场景
//
// 顺序：记录历史 → 更新 current → 保存存档（失败只记录日志）→ 构建并呈现。
// 存档先于呈现，构建失败时存档仍然指向玩家选择进入的场景。
func (n *Navigator) NavigateTo(target story.SceneID) error {
	if !target.Valid() {
		return fmt.Errorf("navigate to %s: %w", target, ErrInvalidScene)
	}
	if n.visited(target) {
		return fmt.Errorf("navigate to %s: %w", target, ErrAlreadyVisited)
	}

	n.history = append(n.history, n.current)
	n.current = target
	log.Printf("[Navigator] %s -> %s", n.history[len(n.history)-1], target)

	if n.store != nil {
		if err := n.store.SaveScene(int(target)); err != nil {
			log.Printf("[Navigator] Warning: failed to save checkpoint: %v", err)
		}
	}

	return n.present(n.fadeDuration)
}

func (n *Navigator) visited(id story.SceneID) bool {
	if id == n.current {
		return true
	}
	for _, h := range n.history {
		if h == id {
			return true
		}
	}
	return false
}

// GoToNext 前往下一个场景
// 已经是最后一个场景时无操作并返回 false（剧情结束走 FinishStory）
func (n *Navigator) GoToNext() bool {
	next, ok := n.current.Next()
	if !ok {
		log.Printf("[Navigator] %s is the last scene, GoToNext ignored", n.current)
		return false
	}
	if err := n.NavigateTo(next); err != nil {
		log.Printf("[Navigator] Error: %v", err)
		return false
	}
	return true
}

// Reset 清空历史并回到第一个场景
// 不修改存档，也不呈现；调用方需要时再调用 PresentCurrent
func (n *Navigator) Reset() {
	n.history = n.history[:0]
	n.current = story.First()
	log.Printf("[Navigator] Reset to %s", n.current)
}

// PresentCurrent 构建并呈现当前场景（Reset 之后使用）
func (n *Navigator) PresentCurrent() error {
	return n.present(n.fadeDuration)
}

// Restart 用同样的配置重建当前场景并立即替换，不改变历史
func (n *Navigator) Restart() error {
	log.Printf("[Navigator] Restart %s", n.current)
	return n.present(0)
}

// FinishStory 剧情的终点：记录完成标记并通知协调者进入考试
func (n *Navigator) FinishStory() {
	log.Printf("[Navigator] Story finished at %s", n.current)
	if n.store != nil {
		if err := n.store.SetStoryCompleted(true); err != nil {
			log.Printf("[Navigator] Warning: failed to save story completed flag: %v", err)
		}
	}
	if n.bus != nil {
		n.bus.Publish(events.Event{Kind: events.StoryCompleted, Scene: n.current})
		n.bus.Publish(events.Event{Kind: events.StartExam, Scene: n.current})
	}
}

// present 构建当前场景并交给宿主
func (n *Navigator) present(fade float64) error {
	if n.factory == nil || n.host == nil {
		return fmt.Errorf("navigator is missing its factory or host")
	}
	scene, err := n.factory(n.current)
	if err == nil && scene == nil {
		err = errors.New("factory returned nil scene")
	}
	if err != nil {
		err = fmt.Errorf("failed to build scene %s: %w", n.current, err)
		n.fatal = err
		log.Printf("[Navigator] Error: %v", err)
		return err
	}
	n.host.Present(scene, fade)
	return nil
}
