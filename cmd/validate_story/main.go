// validate_story 检查剧本和术语表
//
// 用法（在项目根目录运行）：
//
//	go run ./cmd/validate_story
//	go run ./cmd/validate_story -dir path/to/project
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
)

var dir = flag.String("dir", ".", "项目根目录（包含 data/）")

func main() {
	flag.Parse()
	embedded.Init(os.DirFS(*dir))

	storyConfig, err := config.LoadStoryConfig(config.StoryConfigPath)
	if err != nil {
		fmt.Printf("❌ 剧本检查失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 剧本格式正确，场景数量: %d\n", len(storyConfig.Scenes))

	glossary, err := game.NewGlossary(game.GlossaryPath)
	if err != nil {
		fmt.Printf("❌ 术语表读取失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 术语数量: %d\n", glossary.Len())

	missing := 0
	for _, sc := range storyConfig.Scenes {
		lines, defs := 0, 0
		for _, st := range sc.Steps {
			switch st.Kind() {
			case "line":
				lines++
			case "definition":
				defs++
				if _, ok := glossary.Definition(st.Definition); !ok {
					fmt.Printf("❌ %s: 术语表缺少 %s\n", sc.ID, st.Definition)
					missing++
				}
			}
		}
		fmt.Printf("   %-20s %3d 步  %3d 句对白  %d 个术语  进度标签 %v\n", sc.ID, len(sc.Steps), lines, defs, sc.Milestones())
	}

	if missing > 0 {
		fmt.Printf("❌ 有 %d 个术语没有定义\n", missing)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有术语都有定义\n")
}
