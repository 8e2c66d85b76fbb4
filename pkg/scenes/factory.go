package scenes

import (
	"errors"
	"fmt"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

// ErrFactoryUnbound 工厂还没有绑定导航器
var ErrFactoryUnbound = errors.New("scene factory is not bound to a navigator")

// Factory 场景工厂：场景标识 → 场景实例的纯映射
//
// 导航器需要工厂来构建场景，剧情场景又需要导航器来切换，
// 因此先创建工厂，创建导航器后再调用 Bind。
type Factory struct {
	story *config.StoryConfig
	state *game.GameState
	bus   *events.Bus
	nav   Navigation
}

// NewFactory 创建场景工厂
func NewFactory(storyConfig *config.StoryConfig, state *game.GameState, bus *events.Bus) *Factory {
	return &Factory{
		story: storyConfig,
		state: state,
		bus:   bus,
	}
}

// Bind 绑定导航器
func (f *Factory) Bind(nav Navigation) {
	f.nav = nav
}

// Build 构建剧情场景（签名与 game.SceneFactory 一致）
func (f *Factory) Build(id story.SceneID) (game.Scene, error) {
	if f.nav == nil {
		return nil, ErrFactoryUnbound
	}
	if f.story == nil {
		return nil, fmt.Errorf("no story config loaded")
	}
	script, ok := f.story.Scene(id)
	if !ok {
		return nil, fmt.Errorf("no script for scene %s", id)
	}
	return NewStoryScene(script, f.state, f.nav), nil
}

// BuildExam 构建考试场景，restarter 用于暂停菜单的“重新开始本场景”
func (f *Factory) BuildExam(restarter Restarter) *Lifecycle {
	interval := config.DefaultTypewriterInterval
	var glossary *game.Glossary
	if f.state != nil {
		interval = f.state.Settings().TypewriterInterval()
		glossary = f.state.Glossary()
	}
	return NewExamScene(glossary, f.bus, interval, restarter)
}
