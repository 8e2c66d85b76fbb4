// Package story 定义线性剧情的场景序列
//
// 剧情是一条固定的、只能向前推进的场景链：
// Bedroom(0) → Clock → ... → Kitchen(10)。
// 序号连续且全序，Next/Prev 只在序号上 ±1，并在边界处截断。
package story

import (
	"fmt"
	"strings"
)

// SceneID 场景标识（按剧情顺序排列的整数枚举）
type SceneID int

const (
	// Bedroom 卧室开场：Tori 在考试前一天醒来
	Bedroom SceneID = iota
	// Clock 闹钟小游戏
	Clock
	// BedroomPostAlarm 闹钟响后的卧室
	BedroomPostAlarm
	// Closet 衣柜拖拽换装
	Closet
	// BedroomDressed 换装完成后的卧室
	BedroomDressed
	// Hallway 走廊
	Hallway
	// Bathroom 浴室
	Bathroom
	// Mirror 镜子前的自我介绍
	Mirror
	// LivingRoom 客厅
	LivingRoom
	// KitchenDoor 厨房门口
	KitchenDoor
	// Kitchen 厨房做三明治（面包、奶酪等小游戏进度）
	Kitchen

	sceneCount = int(Kitchen) + 1
)

var sceneNames = [sceneCount]string{
	"bedroom",
	"clock",
	"bedroom_post_alarm",
	"closet",
	"bedroom_dressed",
	"hallway",
	"bathroom",
	"mirror",
	"living_room",
	"kitchen_door",
	"kitchen",
}

// First 返回剧情的第一个场景
func First() SceneID { return Bedroom }

// Last 返回剧情的最后一个场景
func Last() SceneID { return Kitchen }

// Count 返回场景总数
func Count() int { return sceneCount }

// All 按剧情顺序返回全部场景
func All() []SceneID {
	ids := make([]SceneID, 0, sceneCount)
	for i := 0; i < sceneCount; i++ {
		ids = append(ids, SceneID(i))
	}
	return ids
}

// Valid 检查标识是否属于固定的场景枚举
func (id SceneID) Valid() bool {
	return id >= First() && id <= Last()
}

// Next 返回下一个场景
// 已经是最后一个场景时返回 (id, false)
func (id SceneID) Next() (SceneID, bool) {
	if !id.Valid() || id == Last() {
		return id, false
	}
	return id + 1, true
}

// Prev 返回上一个场景
// 已经是第一个场景时返回 (id, false)
func (id SceneID) Prev() (SceneID, bool) {
	if !id.Valid() || id == First() {
		return id, false
	}
	return id - 1, true
}

// String 返回场景名（与 story.yaml 中的 id 一致）
func (id SceneID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("scene(%d)", int(id))
	}
	return sceneNames[id]
}

// ParseSceneID 根据场景名解析场景标识，大小写不敏感
func ParseSceneID(name string) (SceneID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range sceneNames {
		if n == key {
			return SceneID(i), nil
		}
	}
	return First(), fmt.Errorf("unknown scene %q", name)
}

// FromOrdinal 将持久化的序号转换为场景标识
func FromOrdinal(ordinal int) (SceneID, bool) {
	id := SceneID(ordinal)
	if !id.Valid() {
		return First(), false
	}
	return id, true
}
