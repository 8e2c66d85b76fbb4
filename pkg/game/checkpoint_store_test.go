package game

import (
	"reflect"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata Manager
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	m, err := gdata.Open(gdata.Config{AppName: "toris_exam_test"})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return m
}

// checkpointStores 对持久化模式和降级模式运行同一组断言
func checkpointStores(t *testing.T) map[string]func(t *testing.T) *CheckpointStore {
	return map[string]func(t *testing.T) *CheckpointStore{
		"gdata": func(t *testing.T) *CheckpointStore {
			return NewCheckpointStore(openTestGdata(t))
		},
		"memory": func(t *testing.T) *CheckpointStore {
			return NewCheckpointStore(nil)
		},
	}
}

// TestCheckpointRoundTrip 写入场景 10 和 ["bread","cheese"]，读回完全一致
func TestCheckpointRoundTrip(t *testing.T) {
	for name, open := range checkpointStores(t) {
		t.Run(name, func(t *testing.T) {
			cs := open(t)

			want := CheckpointRecord{LastScene: 10, MinigameTags: []string{"bread", "cheese"}}
			if err := cs.Save(want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, ok := cs.Load()
			if !ok {
				t.Fatal("Load reported no checkpoint")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load: got %+v, want %+v", got, want)
			}
		})
	}
}

// TestCheckpointFreshStart 没有存档是合法状态
func TestCheckpointFreshStart(t *testing.T) {
	for name, open := range checkpointStores(t) {
		t.Run(name, func(t *testing.T) {
			cs := open(t)

			if _, ok := cs.LoadScene(); ok {
				t.Error("fresh store should have no scene checkpoint")
			}
			if tags := cs.MinigameTags(); len(tags) != 0 {
				t.Errorf("fresh store tags: got %v", tags)
			}
			if cs.StoryCompleted() {
				t.Error("fresh store should not be completed")
			}
		})
	}
}

// TestCheckpointTags 标签按顺序追加且不重复
func TestCheckpointTags(t *testing.T) {
	for name, open := range checkpointStores(t) {
		t.Run(name, func(t *testing.T) {
			cs := open(t)

			for _, tag := range []string{"bread", "cheese", "bread"} {
				if err := cs.AddMinigameTag(tag); err != nil {
					t.Fatalf("AddMinigameTag(%q) failed: %v", tag, err)
				}
			}
			if got := cs.MinigameTags(); !reflect.DeepEqual(got, []string{"bread", "cheese"}) {
				t.Errorf("tags: got %v", got)
			}
			if !cs.HasMinigameTag("cheese") || cs.HasMinigameTag("butter") {
				t.Error("HasMinigameTag returned wrong result")
			}

			if err := cs.SetMinigameTags(nil); err != nil {
				t.Fatalf("SetMinigameTags failed: %v", err)
			}
			if got := cs.MinigameTags(); len(got) != 0 {
				t.Errorf("tags after reset: got %v", got)
			}
		})
	}
}

// TestCheckpointClear 清除进度但保留剧情完成标记
func TestCheckpointClear(t *testing.T) {
	for name, open := range checkpointStores(t) {
		t.Run(name, func(t *testing.T) {
			cs := open(t)

			if err := cs.Save(CheckpointRecord{LastScene: 4, MinigameTags: []string{"bread"}}); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if err := cs.SetStoryCompleted(true); err != nil {
				t.Fatalf("SetStoryCompleted failed: %v", err)
			}

			if err := cs.Clear(); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if err := cs.Clear(); err != nil {
				t.Fatalf("second Clear failed: %v", err)
			}

			if _, ok := cs.LoadScene(); ok {
				t.Error("scene checkpoint should be gone")
			}
			if len(cs.MinigameTags()) != 0 {
				t.Error("tags should be gone")
			}
			if !cs.StoryCompleted() {
				t.Error("story completed flag must survive Clear")
			}
		})
	}
}

// TestCheckpointPersistsAcrossManagers 重新打开存储后数据仍在
func TestCheckpointPersistsAcrossManagers(t *testing.T) {
	m := openTestGdata(t)
	if err := NewCheckpointStore(m).SaveScene(7); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}

	reopened, err := gdata.Open(gdata.Config{AppName: "toris_exam_test"})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	cs := NewCheckpointStore(reopened)
	if !cs.IsPersistent() {
		t.Error("store with a manager should be persistent")
	}
	if got, ok := cs.LoadScene(); !ok || got != 7 {
		t.Errorf("LoadScene: got (%d, %v), want (7, true)", got, ok)
	}
}

// TestCheckpointCorruptData 损坏的数据视为没有存档
func TestCheckpointCorruptData(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(checkpointObject, checkpointSceneProperty, []byte("kitchen")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}
	if err := m.SaveObjectProp(checkpointObject, checkpointTagsProperty, []byte("{not: [a list")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}
	if err := m.SaveObjectProp(storyObject, storyCompletedProperty, []byte("maybe")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	cs := NewCheckpointStore(m)
	if _, ok := cs.LoadScene(); ok {
		t.Error("corrupt ordinal should read as no checkpoint")
	}
	if tags := cs.MinigameTags(); tags != nil {
		t.Errorf("corrupt tags should read as nil, got %v", tags)
	}
	if cs.StoryCompleted() {
		t.Error("corrupt flag should read as not completed")
	}
}
