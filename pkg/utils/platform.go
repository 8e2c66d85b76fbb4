//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，设置 TORI_MOBILE_EMULATE=1 可模拟移动端（显示触摸暂停按钮）
func IsMobile() bool {
	return os.Getenv("TORI_MOBILE_EMULATE") == "1"
}
