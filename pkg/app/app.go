// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// App 也是事件总线唯一的消费者：剧情结束后进入考试、考试结束后重新开始故事，
// 都由 App 在每帧的 Update 中处理。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/modules"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/navigation"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/scenes"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 指定起始场景（如 "kitchen"），为空则从存档加载或从第一个场景开始
	Scene string
	// Reset 启动前清除进度存档
	Reset bool
	// AppName gdata 存储名，为空时使用 game.AppName
	AppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	state        *game.GameState
	storyConfig  *config.StoryConfig
	sceneManager *game.SceneManager
	bus          *events.Bus
	factory      *scenes.Factory
	navigator    *navigation.Navigator
	pauseMenu    *modules.PauseMenuModule

	// exam 正在显示的考试场景，剧情场景显示时为 nil
	exam *scenes.Lifecycle

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 剧本或术语表加载失败是致命错误；存储打开失败时以降级模式运行。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	storyConfig, err := config.LoadStoryConfig(config.StoryConfigPath)
	if err != nil {
		return nil, fmt.Errorf("剧本加载失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个场景剧本", len(storyConfig.Scenes))

	glossary, err := game.NewGlossary(game.GlossaryPath)
	if err != nil {
		return nil, fmt.Errorf("术语表加载失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个术语", glossary.Len())

	appName := cfg.AppName
	if appName == "" {
		appName = game.AppName
	}
	state := game.NewGameState(game.OpenStorage(appName), glossary)

	if cfg.Reset {
		if err := state.Checkpoints().Clear(); err != nil {
			log.Printf("[App] Warning: failed to clear checkpoint: %v", err)
		}
		log.Printf("[App] Checkpoint cleared (-reset)")
	}

	start, err := startScene(cfg.Scene, state.Checkpoints())
	if err != nil {
		return nil, err
	}

	a := &App{
		state:        state,
		storyConfig:  storyConfig,
		sceneManager: game.NewSceneManager(config.GameWindowWidth, config.GameWindowHeight),
		bus:          events.NewBus(events.DefaultCapacity),
		verbose:      cfg.Verbose,
	}

	// 工厂和导航器互相依赖：先建工厂，再绑定导航器
	a.factory = scenes.NewFactory(storyConfig, state, a.bus)
	a.navigator = navigation.New(a.sceneManager, a.factory.Build, state.Checkpoints(), a.bus)
	a.navigator.SetFadeDuration(state.Settings().TransitionDuration())
	a.factory.Bind(a.navigator)

	a.pauseMenu = modules.NewPauseMenuModule(state, modules.PauseMenuCallbacks{
		OnPause:        a.pauseCurrent,
		OnResume:       a.resumeCurrent,
		OnRestartScene: a.restartCurrent,
		OnRestartStory: a.restartStory,
	})

	log.Printf("[App] Starting scene: %s", start)
	if err := a.navigator.Start(start); err != nil {
		return nil, fmt.Errorf("起始场景创建失败: %w", err)
	}

	return a, nil
}

// startScene 决定起始场景：命令行参数 > 存档 > 第一个场景
func startScene(name string, checkpoints *game.CheckpointStore) (story.SceneID, error) {
	if name != "" {
		id, err := story.ParseSceneID(name)
		if err != nil {
			return story.First(), fmt.Errorf("invalid -scene: %w", err)
		}
		return id, nil
	}

	if ordinal, ok := checkpoints.LoadScene(); ok {
		if id, ok := story.FromOrdinal(ordinal); ok {
			log.Printf("[App] Loading from checkpoint: %s", id)
			return id, nil
		}
		log.Printf("[App] Warning: checkpoint ordinal %d out of range, starting over", ordinal)
	}

	log.Printf("[App] No checkpoint found, starting new story")
	return story.First(), nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次），返回错误时游戏退出
func (a *App) Update() error {
	a.updateWindow()

	deltaTime := 1.0 / float64(ebiten.TPS())

	if utils.IsPauseKeyJustPressed() {
		a.pauseMenu.Toggle()
	}
	a.pauseMenu.Update(deltaTime)

	input := utils.GetInputState()
	if input.JustPressed {
		a.HandlePrimaryInput(input.X, input.Y)
	} else if utils.IsAdvanceKeyJustPressed() && !a.pauseMenu.IsActive() {
		// 键盘推进等同于点击对话框
		r := config.DialogueBoxRect()
		a.sceneManager.HandlePrimaryInput((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	}

	a.sceneManager.Update(deltaTime)
	a.bus.Drain(a.handleEvent)

	return a.navigator.Err()
}

// updateWindow F11 切换全屏（桌面端）
func (a *App) updateWindow() {
	if utils.IsMobile() {
		return
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	settings := a.state.Settings()
	settings.SetFullscreen(fullscreen)
	if err := settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// HandlePrimaryInput 分发一次点击：暂停菜单优先，其余交给当前场景
func (a *App) HandlePrimaryInput(x, y int) {
	if a.pauseMenu.HandleClick(x, y) {
		return
	}
	a.sceneManager.HandlePrimaryInput(x, y)
}

// handleEvent 处理总线上的事件
func (a *App) handleEvent(e events.Event) {
	log.Printf("[App] Event %s (scene=%s)", e.Kind, e.Scene)
	switch e.Kind {
	case events.StoryCompleted:
		// 完成标记已由导航器写入存档
	case events.StartExam:
		if err := a.showExam(); err != nil {
			log.Printf("[App] Error: %v", err)
		}
	case events.RestartStory:
		a.restartStory()
	}
}

// showExam 呈现一个新的考试场景
func (a *App) showExam() error {
	exam := a.factory.BuildExam(scenes.RestartFunc(a.showExam))
	a.exam = exam
	a.sceneManager.Present(exam, a.state.Settings().TransitionDuration())
	return nil
}

// restartStory 清除进度并从第一个场景重新开始
func (a *App) restartStory() {
	if err := a.state.Checkpoints().Clear(); err != nil {
		log.Printf("[App] Warning: failed to clear checkpoint: %v", err)
	}
	a.exam = nil
	a.navigator.Reset()
	if err := a.navigator.PresentCurrent(); err != nil {
		log.Printf("[App] Error: %v", err)
	}
}

// restartCurrent 重新开始当前场景（剧情场景或考试）
func (a *App) restartCurrent() {
	if r, ok := a.sceneManager.Current().(game.Restartable); ok {
		r.Restart()
	}
}

func (a *App) pauseCurrent() {
	if p, ok := a.sceneManager.Current().(game.Pausable); ok {
		p.Pause()
	}
}

func (a *App) resumeCurrent() {
	if p, ok := a.sceneManager.Current().(game.Pausable); ok {
		p.Resume()
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.pauseMenu.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Navigator 返回导航器
func (a *App) Navigator() *navigation.Navigator {
	return a.navigator
}

// GameState 返回游戏状态
func (a *App) GameState() *game.GameState {
	return a.state
}

// Exam 返回正在显示的考试场景，剧情场景显示时为 nil
func (a *App) Exam() *scenes.Lifecycle {
	return a.exam
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
