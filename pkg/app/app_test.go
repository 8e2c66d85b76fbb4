package app

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/scenes"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

const testAppName = "toris_exam_app_test"

// setupEnv 临时 HOME + 从仓库 data/ 构造的嵌入文件系统
func setupEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	fsys := fstest.MapFS{}
	for _, name := range []string{"story.yaml", "glossary.txt"} {
		data, err := os.ReadFile("../../data/" + name)
		require.NoError(t, err)
		fsys["data/"+name] = &fstest.MapFile{Data: data}
	}
	embedded.Init(fsys)
	t.Cleanup(embedded.Reset)
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.AppName = testAppName
	a, err := NewApp(cfg)
	require.NoError(t, err)
	return a
}

func currentLifecycle(t *testing.T, a *App) *scenes.Lifecycle {
	t.Helper()
	l, ok := a.GetSceneManager().Current().(*scenes.Lifecycle)
	require.True(t, ok, "current scene should be a *scenes.Lifecycle")
	return l
}

func TestNewApp_FreshStart(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{})

	assert.Equal(t, story.Bedroom, a.Navigator().Current())
	assert.Empty(t, a.Navigator().History())
	assert.Equal(t, "bedroom", currentLifecycle(t, a).Name())
	assert.True(t, currentLifecycle(t, a).IsInitialized())
	assert.False(t, a.GetSceneManager().IsTransitioning(), "launch presents without a fade")
	assert.Nil(t, a.Exam())

	w, h := a.Layout(100, 100)
	assert.Equal(t, config.GameWindowWidth, w)
	assert.Equal(t, config.GameWindowHeight, h)
}

func TestNewApp_SceneFlag(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{Scene: "kitchen"})
	assert.Equal(t, story.Kitchen, a.Navigator().Current())
	assert.Equal(t, "kitchen", currentLifecycle(t, a).Name())
}

func TestNewApp_InvalidSceneFlag(t *testing.T) {
	setupEnv(t)
	_, err := NewApp(Config{Scene: "attic", AppName: testAppName})
	assert.Error(t, err)
}

func TestNewApp_MissingStory(t *testing.T) {
	setupEnv(t)
	embedded.Init(fstest.MapFS{})
	_, err := NewApp(Config{AppName: testAppName})
	assert.Error(t, err)
}

func TestNewApp_ResumeAndReset(t *testing.T) {
	setupEnv(t)
	first := newTestApp(t, Config{})
	if !first.GameState().Checkpoints().IsPersistent() {
		t.Skip("gdata storage unavailable")
	}
	require.NoError(t, first.GameState().Checkpoints().SaveScene(int(story.Mirror)))

	resumed := newTestApp(t, Config{})
	assert.Equal(t, story.Mirror, resumed.Navigator().Current())

	reset := newTestApp(t, Config{Reset: true})
	assert.Equal(t, story.Bedroom, reset.Navigator().Current())
	_, ok := reset.GameState().Checkpoints().LoadScene()
	assert.False(t, ok)
}

func TestStartScene_OutOfRangeCheckpoint(t *testing.T) {
	store := game.NewCheckpointStore(nil)
	require.NoError(t, store.SaveScene(42))

	id, err := startScene("", store)
	require.NoError(t, err)
	assert.Equal(t, story.First(), id)
}

func TestApp_FinishStoryShowsExam(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{Scene: "kitchen"})

	a.Navigator().FinishStory()
	assert.True(t, a.GameState().Checkpoints().StoryCompleted())

	n := a.bus.Drain(a.handleEvent)
	assert.Equal(t, 2, n)
	require.NotNil(t, a.Exam())
	assert.Same(t, a.Exam(), a.GetSceneManager().Current())
	assert.Equal(t, scenes.ExamName, a.Exam().Name())
}

func TestApp_RestartStory(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{Scene: "kitchen"})
	require.NoError(t, a.GameState().Checkpoints().SaveScene(int(story.Kitchen)))
	require.NoError(t, a.GameState().Checkpoints().AddMinigameTag("bread"))

	a.handleEvent(events.Event{Kind: events.StartExam})
	require.NotNil(t, a.Exam())

	a.handleEvent(events.Event{Kind: events.RestartStory})
	assert.Nil(t, a.Exam())
	assert.Equal(t, story.Bedroom, a.Navigator().Current())
	assert.Empty(t, a.Navigator().History())
	assert.Equal(t, "bedroom", currentLifecycle(t, a).Name())

	_, ok := a.GameState().Checkpoints().LoadScene()
	assert.False(t, ok, "restarting the story clears the checkpoint")
	assert.Empty(t, a.GameState().Checkpoints().MinigameTags())
}

func TestApp_PauseMenuPausesScene(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{})
	scene := currentLifecycle(t, a)

	r := config.PauseButtonRect()
	a.HandlePrimaryInput(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	assert.True(t, a.GameState().IsPaused)
	assert.True(t, scene.IsPaused())

	// 菜单打开时点击不会到达场景
	before := scene.Dialogue().Line()
	a.HandlePrimaryInput(1, 1)
	assert.Equal(t, before, scene.Dialogue().Line())

	c := config.MenuButtonRect(0, 3)
	a.HandlePrimaryInput(c.Min.X+1, c.Min.Y+1)
	assert.False(t, a.GameState().IsPaused)
	assert.False(t, scene.IsPaused())
}

func TestApp_RestartSceneFromMenu(t *testing.T) {
	setupEnv(t)
	a := newTestApp(t, Config{Scene: "closet"})
	old := currentLifecycle(t, a)

	r := config.PauseButtonRect()
	a.HandlePrimaryInput(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	c := config.MenuButtonRect(1, 3)
	a.HandlePrimaryInput(c.Min.X+1, c.Min.Y+1)

	fresh := currentLifecycle(t, a)
	assert.NotSame(t, old, fresh)
	assert.True(t, old.IsDisposed())
	assert.Equal(t, "closet", fresh.Name())
	assert.False(t, fresh.IsPaused())
	assert.Equal(t, story.Closet, a.Navigator().Current())
}
