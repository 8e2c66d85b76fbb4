package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/app"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
)

var (
	// 命令行参数
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	scene   = flag.String("scene", "", "从指定场景开始（如 closet、kitchen），忽略存档")
	reset   = flag.Bool("reset", false, "启动前清除进度存档")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Scene:   *scene,
		Reset:   *reset,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Tori's Exam")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if gameApp.GameState().Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
