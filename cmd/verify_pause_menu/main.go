// verify_pause_menu 暂停菜单验证程序
//
// 显示一个剧情场景和暂停菜单，用于检查模糊效果、按钮布局和点击区域。
// 在项目根目录运行：
//
//	go run ./cmd/verify_pause_menu -scene mirror
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/modules"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/scenes"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

var (
	// 命令行参数
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	sceneName = flag.String("scene", "bedroom", "要显示的剧情场景")
	showRects = flag.Bool("rects", true, "显示按钮点击区域")
)

var errQuit = errors.New("quit")

var hitRectColor = color.RGBA{R: 255, A: 90}

// VerifyPauseMenuGame 暂停菜单验证游戏
type VerifyPauseMenuGame struct {
	gameState       *game.GameState
	scene           *scenes.Lifecycle
	pauseMenuModule *modules.PauseMenuModule
}

// stayNav 验证程序不切换场景，只记录请求
type stayNav struct{}

func (stayNav) GoToNext() bool {
	log.Println("[Callback] GoToNext requested")
	return false
}

func (stayNav) FinishStory() {
	log.Println("[Callback] FinishStory requested")
}

func (stayNav) Restart() error {
	log.Println("[Callback] Restart requested")
	return nil
}

// NewVerifyPauseMenuGame 创建验证游戏实例
func NewVerifyPauseMenuGame(name string) (*VerifyPauseMenuGame, error) {
	storyConfig, err := config.LoadStoryConfig(config.StoryConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	glossary, err := game.NewGlossary(game.GlossaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load glossary: %w", err)
	}
	id, err := story.ParseSceneID(name)
	if err != nil {
		return nil, err
	}
	script, ok := storyConfig.Scene(id)
	if !ok {
		return nil, fmt.Errorf("no script for scene %s", id)
	}

	// 验证程序不写存档
	gs := game.NewGameState(nil, glossary)
	vpg := &VerifyPauseMenuGame{
		gameState: gs,
		scene:     scenes.NewStoryScene(script, gs, stayNav{}),
	}
	vpg.pauseMenuModule = modules.NewPauseMenuModule(gs, modules.PauseMenuCallbacks{
		OnPause:  vpg.scene.Pause,
		OnResume: vpg.scene.Resume,
		OnRestartScene: func() {
			log.Println("[Callback] Restart scene button clicked")
		},
		OnRestartStory: func() {
			log.Println("[Callback] Restart story button clicked")
		},
	})

	vpg.scene.OnPresented()

	// 默认显示菜单
	vpg.pauseMenuModule.Show()

	log.Println("[VerifyPauseMenuGame] 暂停菜单验证程序已启动")
	return vpg, nil
}

// Update 更新游戏逻辑
func (vpg *VerifyPauseMenuGame) Update() error {
	// 快捷键：Q 键退出
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		log.Println("[VerifyPauseMenuGame] 退出验证程序")
		return errQuit
	}

	// 快捷键：ESC / P 切换菜单显示/隐藏
	if utils.IsPauseKeyJustPressed() {
		vpg.pauseMenuModule.Toggle()
		log.Printf("[VerifyPauseMenuGame] 菜单状态切换: %v", vpg.pauseMenuModule.IsActive())
	}

	input := utils.GetInputState()
	if input.JustPressed && !vpg.pauseMenuModule.HandleClick(input.X, input.Y) {
		vpg.scene.HandlePrimaryInputAt(input.X, input.Y)
	}

	dt := 1.0 / float64(ebiten.TPS())
	vpg.pauseMenuModule.Update(dt)
	vpg.scene.Update(dt)
	return nil
}

// Draw 绘制游戏画面
func (vpg *VerifyPauseMenuGame) Draw(screen *ebiten.Image) {
	vpg.scene.Draw(screen)
	vpg.pauseMenuModule.Draw(screen)

	if !*showRects {
		return
	}
	if vpg.pauseMenuModule.IsActive() {
		for i := 0; i < vpg.pauseMenuModule.ButtonCount(); i++ {
			r := vpg.pauseMenuModule.ButtonRect(i)
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, hitRectColor, false)
		}
		return
	}
	hit := config.PauseButtonRect()
	vector.StrokeRect(screen, float32(hit.Min.X), float32(hit.Min.Y), float32(hit.Dx()), float32(hit.Dy()), 2, hitRectColor, false)
}

// Layout 设置屏幕布局
func (vpg *VerifyPauseMenuGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	embedded.Init(os.DirFS("."))

	vpg, err := NewVerifyPauseMenuGame(*sceneName)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("暂停菜单验证 - Tori's Exam")
	if err := ebiten.RunGame(vpg); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
