package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

// StoryConfigPath 剧本文件在嵌入文件系统中的路径
const StoryConfigPath = "data/story.yaml"

// 剧本中的转场目标
const (
	TransitionNext = "next" // 进入下一个场景
	TransitionExam = "exam" // 剧情结束，进入考试
)

// 剧本中可用的效果名
const (
	EffectWait  = "wait"  // 停顿 StepDelay 秒
	EffectFlash = "flash" // 白屏闪烁
	EffectShake = "shake" // 画面抖动
)

var knownEffects = map[string]bool{
	EffectWait:  true,
	EffectFlash: true,
	EffectShake: true,
}

// IsKnownEffect 检查效果名是否受支持
func IsKnownEffect(name string) bool {
	return knownEffects[name]
}

// StoryConfig 整个故事的剧本
type StoryConfig struct {
	Narrator string        `yaml:"narrator"` // 未指定说话人时使用的名字
	Scenes   []SceneScript `yaml:"scenes"`

	byID map[story.SceneID]*SceneScript
}

// SceneScript 单个场景的剧本
type SceneScript struct {
	ID         string       `yaml:"id"`         // 场景名，如 "bedroom"
	Title      string       `yaml:"title"`      // 场景标题（左上角显示）
	Background string       `yaml:"background"` // 背景色 "#RRGGBB"
	Steps      []StepConfig `yaml:"steps"`

	SceneID story.SceneID `yaml:"-"`
	Color   color.RGBA    `yaml:"-"`
}

// StepConfig 一个剧情步骤，每个步骤只能包含一种动作
//
//   - text: 显示一行对话（speaker 可选）
//   - effect: 执行效果
//   - definition: 弹出术语定义（词汇表键），关闭后继续
//   - milestone: 记录小游戏进度标签到存档
//   - transition: 结束本场景（"next" / "exam"）
//
// part 可以附加在任意步骤上：当存档中已有同名进度标签时，
// 场景初始化会跳过这些步骤。
type StepConfig struct {
	Speaker    string `yaml:"speaker"`
	Text       string `yaml:"text"`
	Effect     string `yaml:"effect"`
	Definition string `yaml:"definition"`
	Milestone  string `yaml:"milestone"`
	Transition string `yaml:"transition"`
	Part       string `yaml:"part"`
}

// Kind 返回步骤的动作类型名
func (s StepConfig) Kind() string {
	switch {
	case s.Transition != "":
		return "transition"
	case s.Definition != "":
		return "definition"
	case s.Milestone != "":
		return "milestone"
	case s.Effect != "":
		return "effect"
	default:
		return "line"
	}
}

// actionCount 统计步骤包含的动作数量
func (s StepConfig) actionCount() int {
	n := 0
	for _, v := range []string{s.Text, s.Effect, s.Definition, s.Milestone, s.Transition} {
		if v != "" {
			n++
		}
	}
	return n
}

// LoadStoryConfig 从嵌入文件系统加载剧本
func LoadStoryConfig(path string) (*StoryConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story config file %s: %w", path, err)
	}

	cfg, err := ParseStoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid story config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseStoryConfig 解析并验证剧本 YAML
func ParseStoryConfig(data []byte) (*StoryConfig, error) {
	var cfg StoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse story YAML: %w", err)
	}

	applyStoryDefaults(&cfg)

	if err := validateStoryConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyStoryDefaults 填充可选字段
func applyStoryDefaults(cfg *StoryConfig) {
	if cfg.Narrator == "" {
		cfg.Narrator = "Narrator"
	}
	for i := range cfg.Scenes {
		sc := &cfg.Scenes[i]
		if sc.Background == "" {
			sc.Background = "#20232A"
		}
		for j := range sc.Steps {
			st := &sc.Steps[j]
			if st.Text != "" && st.Speaker == "" {
				st.Speaker = cfg.Narrator
			}
		}
	}
}

// validateStoryConfig 验证剧本
//
// 规则：
//   - 每个枚举场景恰好有一个剧本
//   - 每个步骤恰好一种动作，效果名必须受支持
//   - 最后一步必须是转场，转场只能出现在最后一步
//   - 最后一个场景以 "exam" 结束，其余以 "next" 结束
func validateStoryConfig(cfg *StoryConfig) error {
	cfg.byID = make(map[story.SceneID]*SceneScript, len(cfg.Scenes))

	for i := range cfg.Scenes {
		sc := &cfg.Scenes[i]

		id, err := story.ParseSceneID(sc.ID)
		if err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}
		if _, dup := cfg.byID[id]; dup {
			return fmt.Errorf("scene %q defined more than once", sc.ID)
		}
		sc.SceneID = id

		c, err := ParseHexColor(sc.Background)
		if err != nil {
			return fmt.Errorf("scene %q: %w", sc.ID, err)
		}
		sc.Color = c

		if len(sc.Steps) == 0 {
			return fmt.Errorf("scene %q has no steps", sc.ID)
		}

		for j, st := range sc.Steps {
			if n := st.actionCount(); n != 1 {
				return fmt.Errorf("scene %q step %d: expected exactly one action, got %d", sc.ID, j, n)
			}
			if st.Effect != "" && !IsKnownEffect(st.Effect) {
				return fmt.Errorf("scene %q step %d: unknown effect %q", sc.ID, j, st.Effect)
			}
			isLast := j == len(sc.Steps)-1
			if st.Transition != "" && !isLast {
				return fmt.Errorf("scene %q step %d: transition must be the last step", sc.ID, j)
			}
			if isLast && st.Transition == "" {
				return fmt.Errorf("scene %q: last step must be a transition", sc.ID)
			}
		}

		want := TransitionNext
		if id == story.Last() {
			want = TransitionExam
		}
		if got := sc.Steps[len(sc.Steps)-1].Transition; got != want {
			return fmt.Errorf("scene %q: expected transition %q, got %q", sc.ID, want, got)
		}

		cfg.byID[id] = sc
	}

	for _, id := range story.All() {
		if _, ok := cfg.byID[id]; !ok {
			return fmt.Errorf("missing script for scene %q", id)
		}
	}
	return nil
}

// Scene 返回指定场景的剧本
func (c *StoryConfig) Scene(id story.SceneID) (*SceneScript, bool) {
	sc, ok := c.byID[id]
	return sc, ok
}

// Milestones 返回场景中出现的全部进度标签（按出现顺序）
func (s *SceneScript) Milestones() []string {
	var tags []string
	for _, st := range s.Steps {
		if st.Milestone != "" {
			tags = append(tags, st.Milestone)
		}
	}
	return tags
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
