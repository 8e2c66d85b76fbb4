package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "toris_exam"

// GameState 跨场景共享的游戏状态
//
// 在应用启动时创建一次，显式传给需要它的组件（导航器、暂停菜单、场景工厂），
// 生命周期与应用相同。没有全局实例。
type GameState struct {
	// IsPaused 暂停菜单是否打开，由 PauseMenuModule 维护
	IsPaused bool

	gdataManager *gdata.Manager
	settings     *SettingsManager
	checkpoints  *CheckpointStore
	glossary     *Glossary
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil，游戏以降级模式运行（存档只在内存中）
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: storage directory check failed: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: failed to open gdata storage: %v (progress will not be saved)", err)
		return nil
	}
	return manager
}

// NewGameState 创建游戏状态
//
// 参数：
//   - gdataManager: 可为 nil（降级模式）
//   - glossary: 术语表，可为 nil（定义弹窗显示键名）
func NewGameState(gdataManager *gdata.Manager, glossary *Glossary) *GameState {
	if glossary == nil {
		glossary = &Glossary{entries: map[string]string{}}
	}
	return &GameState{
		gdataManager: gdataManager,
		settings:     NewSettingsManager(gdataManager),
		checkpoints:  NewCheckpointStore(gdataManager),
		glossary:     glossary,
	}
}

// GetGdataManager 返回 gdata 管理器，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// Settings 返回设置管理器
func (gs *GameState) Settings() *SettingsManager {
	return gs.settings
}

// Checkpoints 返回进度存档
func (gs *GameState) Checkpoints() *CheckpointStore {
	return gs.checkpoints
}

// SetPaused 设置暂停状态
func (gs *GameState) SetPaused(paused bool) {
	gs.IsPaused = paused
}

// Glossary 返回术语表
func (gs *GameState) Glossary() *Glossary {
	return gs.glossary
}
