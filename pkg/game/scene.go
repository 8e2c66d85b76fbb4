package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

// Scene represents one full-screen unit of the story (bedroom, kitchen, exam...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Presentable 场景成为当前渲染目标时被调用
// 宿主可能多次调用（例如重新挂载），场景自己保证初始化只执行一次
type Presentable interface {
	OnPresented()
}

// Teardowner 场景被替换时调用，取消所有挂在场景上的延时任务
type Teardowner interface {
	Teardown()
}

// InputReceiver 唯一的主输入入口（点击/触摸，逻辑屏幕坐标）
type InputReceiver interface {
	HandlePrimaryInputAt(x, y int)
}

// Pausable 可暂停的场景
// Pause/Resume 必须是幂等的
type Pausable interface {
	Pause()
	Resume()
	IsPaused() bool
}

// Restartable 可以用同样的配置重新创建的场景
type Restartable interface {
	Restart()
}

// SceneFactory 场景工厂函数类型
// 标识 → 场景实例的纯映射，失败视为资源/配置错误
type SceneFactory func(id story.SceneID) (Scene, error)
