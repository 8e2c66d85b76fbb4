package scenes

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/events"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/story"
)

func loadBundledStory(t *testing.T) *config.StoryConfig {
	t.Helper()
	data, err := os.ReadFile("../../data/story.yaml")
	require.NoError(t, err)
	cfg, err := config.ParseStoryConfig(data)
	require.NoError(t, err)
	return cfg
}

func TestFactory_Unbound(t *testing.T) {
	f := NewFactory(loadBundledStory(t), newTestState(t), nil)
	_, err := f.Build(story.Bedroom)
	assert.ErrorIs(t, err, ErrFactoryUnbound)
}

func TestFactory_BuildEveryScene(t *testing.T) {
	f := NewFactory(loadBundledStory(t), newTestState(t), nil)
	f.Bind(&fakeNav{})

	for _, id := range story.All() {
		s, err := f.Build(id)
		require.NoError(t, err, id.String())
		l, ok := s.(*Lifecycle)
		require.True(t, ok)
		assert.Equal(t, id.String(), l.Name())
		assert.False(t, l.IsInitialized(), "setup waits for presentation")
	}
}

func TestFactory_MissingScript(t *testing.T) {
	f := NewFactory(nil, newTestState(t), nil)
	f.Bind(&fakeNav{})
	_, err := f.Build(story.Bedroom)
	assert.Error(t, err)

	f = NewFactory(loadBundledStory(t), newTestState(t), nil)
	f.Bind(&fakeNav{})
	_, err = f.Build(story.SceneID(99))
	assert.Error(t, err)
}

func TestFactory_BuildExam(t *testing.T) {
	bus := events.NewBus(events.DefaultCapacity)
	f := NewFactory(loadBundledStory(t), newTestState(t), bus)
	l := f.BuildExam(nil)
	assert.Equal(t, ExamName, l.Name())

	l.OnPresented()
	c := l.Content().(*ExamContent)
	_, total := c.Score()
	assert.Equal(t, 4, total, "one question per glossary entry")
}
