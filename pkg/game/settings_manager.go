package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
)

// GameSettings 全局游戏设置
type GameSettings struct {
	// 打字机字符间隔（秒），0 表示整行立即显示
	TypewriterInterval float64 `yaml:"typewriterInterval"`

	// 跳过场景切换的交叉淡化
	SkipTransitions bool `yaml:"skipTransitions"`

	// 启动时是否全屏（仅桌面端）
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		TypewriterInterval: config.DefaultTypewriterInterval,
		SkipTransitions:    false,
		Fullscreen:         false,
	}
}

// SettingsManager 设置管理器
// 负责游戏设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录日志后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，旧文件中缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TypewriterInterval = clampInterval(loaded.TypewriterInterval)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// TypewriterInterval 返回当前打字机字符间隔
func (sm *SettingsManager) TypewriterInterval() float64 {
	return sm.settings.TypewriterInterval
}

// TransitionDuration 返回场景切换的淡化时长（跳过时为 0）
func (sm *SettingsManager) TransitionDuration() float64 {
	if sm.settings.SkipTransitions {
		return 0
	}
	return config.TransitionFadeDuration
}

// SetTypewriterInterval 设置打字机字符间隔
//
// 值会被限制在 [MinTypewriterInterval, MaxTypewriterInterval] 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTypewriterInterval(seconds float64) {
	sm.settings.TypewriterInterval = clampInterval(seconds)
}

// SetSkipTransitions 设置是否跳过交叉淡化
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSkipTransitions(skip bool) {
	sm.settings.SkipTransitions = skip
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampInterval 将字符间隔限制在允许范围内
func clampInterval(seconds float64) float64 {
	if seconds < config.MinTypewriterInterval {
		return config.MinTypewriterInterval
	}
	if seconds > config.MaxTypewriterInterval {
		return config.MaxTypewriterInterval
	}
	return seconds
}
