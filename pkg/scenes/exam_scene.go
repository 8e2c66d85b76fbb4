package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

// ExamName 考试场景名（不在剧情场景枚举中）
const ExamName = "exam"

const (
	examQuestionCount = 5
	examOptionCount   = 3
	examExaminer      = "Byte"

	examOptionWidth   = 240
	examOptionHeight  = 56
	examOptionSpacing = 24
)

var (
	examBackground  = color.RGBA{R: 30, G: 42, B: 56, A: 255}
	examOptionFill  = color.RGBA{R: 235, G: 228, B: 250, A: 255}
	examOptionLine  = color.RGBA{R: 120, G: 70, B: 160, A: 255}
	examOptionText  = color.RGBA{R: 40, G: 36, B: 48, A: 255}
	examHeaderColor = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// examQuestion 一道选择题：给出定义，选出对应的术语
type examQuestion struct {
	key     string
	prompt  string
	options []string // 术语键
	answer  int      // 正确选项下标
}

// buildExamQuestions 用词汇表生成题目
// 题目顺序和选项位置是确定的，同一份词汇表每次生成相同的试卷
func buildExamQuestions(g *game.Glossary, count int) []examQuestion {
	keys := g.Keys()
	if len(keys) < examOptionCount {
		return nil
	}
	if count > len(keys) {
		count = len(keys)
	}

	questions := make([]examQuestion, 0, count)
	for i := 0; i < count; i++ {
		key := keys[i]
		def, _ := g.Definition(key)

		options := make([]string, examOptionCount)
		answer := i % examOptionCount
		for j := range options {
			offset := (j - answer + examOptionCount) % examOptionCount
			options[j] = keys[(i+offset)%len(keys)]
		}

		questions = append(questions, examQuestion{
			key:     key,
			prompt:  def,
			options: options,
			answer:  answer,
		})
	}
	return questions
}

// ExamContent 剧情结束后的考试
// 考完后点击发布 RestartStory，由协调者清除存档并从头开始
type ExamContent struct {
	glossary     *game.Glossary
	bus          *events.Bus
	charInterval float64

	life      *Lifecycle
	questions []examQuestion
	index     int
	score     int
	answered  bool
	finished  bool

	optionPanel *ebiten.Image
}

// NewExamScene 创建考试场景
func NewExamScene(glossary *game.Glossary, bus *events.Bus, charInterval float64, restarter Restarter) *Lifecycle {
	c := &ExamContent{
		glossary:     glossary,
		bus:          bus,
		charInterval: charInterval,
	}
	return NewLifecycle(ExamName, c, restarter)
}

// Score 返回得分和题目总数
func (c *ExamContent) Score() (int, int) {
	return c.score, len(c.questions)
}

// Finished 是否已答完
func (c *ExamContent) Finished() bool {
	return c.finished
}

// OnSetup 生成试卷并提出第一题
func (c *ExamContent) OnSetup(l *Lifecycle) {
	c.life = l
	if c.glossary != nil {
		c.questions = buildExamQuestions(c.glossary, examQuestionCount)
	}
	log.Printf("[ExamScene] %d questions", len(c.questions))
	c.ask()
}

func (c *ExamContent) ask() {
	c.answered = false
	if c.index >= len(c.questions) {
		c.finish()
		return
	}
	q := c.questions[c.index]
	text := fmt.Sprintf("Question %d: %s", c.index+1, q.prompt)
	c.life.Dialogue().ShowLine(examExaminer, text, c.charInterval)
}

func (c *ExamContent) finish() {
	c.finished = true
	text := fmt.Sprintf("You scored %d out of %d! Tap to start the story again.", c.score, len(c.questions))
	c.life.Dialogue().ShowLine(examExaminer, text, c.charInterval)
	c.life.Dialogue().Arm(func() {
		if c.bus != nil {
			c.bus.Publish(events.Event{Kind: events.RestartStory})
		}
	})
}

// OptionRect 返回第 i 个选项按钮的区域
func OptionRect(i int) image.Rectangle {
	total := examOptionCount*examOptionWidth + (examOptionCount-1)*examOptionSpacing
	x0 := (config.GameWindowWidth-total)/2 + i*(examOptionWidth+examOptionSpacing)
	y1 := config.DialogueBoxRect().Min.Y - 40
	return image.Rect(x0, y1-examOptionHeight, x0+examOptionWidth, y1)
}

// Answer 选择第 option 个选项，返回是否答对
// 当前没有待回答的题目时返回 false
func (c *ExamContent) Answer(option int) bool {
	if c.finished || c.answered || c.index >= len(c.questions) {
		return false
	}
	if option < 0 || option >= examOptionCount {
		return false
	}

	q := c.questions[c.index]
	c.answered = true
	correct := option == q.answer

	var feedback string
	if correct {
		c.score++
		feedback = "Correct! That is " + c.glossary.Title(q.key) + "."
	} else {
		feedback = "Not quite. That was " + c.glossary.Title(q.key) + "."
	}
	c.life.Dialogue().ShowLine(examExaminer, feedback, c.charInterval)
	c.life.Dialogue().Arm(func() {
		c.index++
		c.ask()
	})
	return correct
}

// OnInputAt 点击选项作答，其他位置推进对话
func (c *ExamContent) OnInputAt(x, y int) {
	if c.optionsVisible() {
		for i := 0; i < examOptionCount; i++ {
			if utils.PointIn(OptionRect(i), x, y) {
				c.Answer(i)
				return
			}
		}
	}
	c.life.Dialogue().HandleAcknowledge()
}

// optionsVisible 题目等待作答时显示选项
func (c *ExamContent) optionsVisible() bool {
	return !c.finished && !c.answered && c.index < len(c.questions)
}

// Update 考试没有额外的动画
func (c *ExamContent) Update(dt float64) {}

// Draw 绘制标题和选项按钮
func (c *ExamContent) Draw(screen *ebiten.Image) {
	screen.Fill(examBackground)
	drawTitle(screen, "The Exam", 24, 20, examHeaderColor)

	if !c.optionsVisible() {
		return
	}

	if c.optionPanel == nil {
		c.optionPanel = utils.RasterizePanel(examOptionWidth, examOptionHeight, utils.PanelStyle{
			Radius:      config.MenuButtonRadius,
			Fill:        examOptionFill,
			Border:      examOptionLine,
			BorderWidth: 3,
		})
	}

	face := utils.DefaultFace(config.MenuButtonText)
	q := c.questions[c.index]
	for i, key := range q.options {
		r := OptionRect(i)
		if c.optionPanel != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
			screen.DrawImage(c.optionPanel, op)
		}
		if face != nil {
			drawString(screen, c.glossary.Title(key), face, float64(r.Min.X)+20, float64(r.Min.Y)+14, examOptionText)
		}
	}
}
