package probe

import "errors"

var (
	// ErrIO 读取内核接口失败（文件/系统调用）
	ErrIO = errors.New("probe io error")
	// ErrParse 内核返回的内容无法解析
	ErrParse = errors.New("probe parse error")
	// ErrNoSensorsFound 没有找到任何 CPU 频率传感器
	ErrNoSensorsFound = errors.New("no cpu frequency sensors found")
)
