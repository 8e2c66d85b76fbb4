package game

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	checkpointObject        = "checkpoint"
	checkpointSceneProperty = "checkpoint_scene"
	checkpointTagsProperty  = "checkpoint_kitchen_ingredients"

	storyObject            = "story"
	storyCompletedProperty = "story_completed"
)

// CheckpointRecord 最小的进度存档
type CheckpointRecord struct {
	LastScene    int      // 最后进入的场景序号
	MinigameTags []string // 小游戏阶段进度（按完成顺序）
}

// CheckpointStore 进度存档
//
// 扁平的键值存储：
//   - checkpoint/checkpoint_scene: 场景序号（十进制文本）
//   - checkpoint/checkpoint_kitchen_ingredients: 进度标签（YAML 列表）
//   - story/story_completed: 剧情是否完成过（"true"/"false"）
//
// 读取失败视为“没有存档”；写入失败返回给调用方，由调用方记录日志后忽略。
// gdataManager 为 nil 时降级为内存存储（本次运行内有效）。
type CheckpointStore struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
}

// NewCheckpointStore 创建存档
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewCheckpointStore(gdataManager *gdata.Manager) *CheckpointStore {
	cs := &CheckpointStore{gdataManager: gdataManager}
	if gdataManager == nil {
		cs.memory = make(map[string][]byte)
	}
	return cs
}

// IsPersistent 存档是否写入磁盘
func (cs *CheckpointStore) IsPersistent() bool {
	return cs.gdataManager != nil
}

func memoryKey(object, prop string) string {
	return object + "/" + prop
}

func (cs *CheckpointStore) read(object, prop string) ([]byte, bool) {
	if cs.gdataManager == nil {
		data, ok := cs.memory[memoryKey(object, prop)]
		return data, ok
	}
	if !cs.gdataManager.ObjectPropExists(object, prop) {
		return nil, false
	}
	data, err := cs.gdataManager.LoadObjectProp(object, prop)
	if err != nil {
		log.Printf("[CheckpointStore] Warning: failed to read %s/%s: %v", object, prop, err)
		return nil, false
	}
	return data, true
}

func (cs *CheckpointStore) write(object, prop string, data []byte) error {
	if cs.gdataManager == nil {
		cs.memory[memoryKey(object, prop)] = data
		return nil
	}
	if err := cs.gdataManager.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, prop, err)
	}
	return nil
}

func (cs *CheckpointStore) remove(object, prop string) error {
	if cs.gdataManager == nil {
		delete(cs.memory, memoryKey(object, prop))
		return nil
	}
	if !cs.gdataManager.ObjectPropExists(object, prop) {
		return nil
	}
	if err := cs.gdataManager.DeleteObjectProp(object, prop); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", object, prop, err)
	}
	return nil
}

// SaveScene 保存最后进入的场景序号
func (cs *CheckpointStore) SaveScene(ordinal int) error {
	return cs.write(checkpointObject, checkpointSceneProperty, []byte(strconv.Itoa(ordinal)))
}

// LoadScene 读取场景序号，没有存档或数据损坏时返回 false
func (cs *CheckpointStore) LoadScene() (int, bool) {
	data, ok := cs.read(checkpointObject, checkpointSceneProperty)
	if !ok {
		return 0, false
	}
	ordinal, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		log.Printf("[CheckpointStore] Warning: corrupt scene checkpoint %q: %v", data, err)
		return 0, false
	}
	return ordinal, true
}

// MinigameTags 读取进度标签，没有时返回 nil
func (cs *CheckpointStore) MinigameTags() []string {
	data, ok := cs.read(checkpointObject, checkpointTagsProperty)
	if !ok {
		return nil
	}
	var tags []string
	if err := yaml.Unmarshal(data, &tags); err != nil {
		log.Printf("[CheckpointStore] Warning: corrupt minigame tags: %v", err)
		return nil
	}
	return tags
}

// SetMinigameTags 覆盖进度标签（保持顺序）
func (cs *CheckpointStore) SetMinigameTags(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	data, err := yaml.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal minigame tags: %w", err)
	}
	return cs.write(checkpointObject, checkpointTagsProperty, data)
}

// AddMinigameTag 追加进度标签，已存在时不重复添加
func (cs *CheckpointStore) AddMinigameTag(tag string) error {
	tags := cs.MinigameTags()
	for _, t := range tags {
		if t == tag {
			return nil
		}
	}
	return cs.SetMinigameTags(append(tags, tag))
}

// HasMinigameTag 是否已记录某个进度标签
func (cs *CheckpointStore) HasMinigameTag(tag string) bool {
	for _, t := range cs.MinigameTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Save 写入完整存档
func (cs *CheckpointStore) Save(record CheckpointRecord) error {
	if err := cs.SaveScene(record.LastScene); err != nil {
		return err
	}
	return cs.SetMinigameTags(record.MinigameTags)
}

// Load 读取完整存档，没有场景存档时第二个返回值为 false
func (cs *CheckpointStore) Load() (CheckpointRecord, bool) {
	ordinal, ok := cs.LoadScene()
	return CheckpointRecord{
		LastScene:    ordinal,
		MinigameTags: cs.MinigameTags(),
	}, ok
}

// Clear 清除进度存档（不影响剧情完成标记）
func (cs *CheckpointStore) Clear() error {
	if err := cs.remove(checkpointObject, checkpointSceneProperty); err != nil {
		return err
	}
	return cs.remove(checkpointObject, checkpointTagsProperty)
}

// SetStoryCompleted 记录剧情是否完成过
func (cs *CheckpointStore) SetStoryCompleted(completed bool) error {
	return cs.write(storyObject, storyCompletedProperty, []byte(strconv.FormatBool(completed)))
}

// StoryCompleted 剧情是否完成过，读取失败视为未完成
func (cs *CheckpointStore) StoryCompleted() bool {
	data, ok := cs.read(storyObject, storyCompletedProperty)
	if !ok {
		return false
	}
	completed, err := strconv.ParseBool(strings.TrimSpace(string(data)))
	return err == nil && completed
}
