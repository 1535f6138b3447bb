package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/host-exporter/pkg/logger"
)

const (
	// DefaultSysfsRoot cpufreq 所在目录
	DefaultSysfsRoot = "/sys/devices/system/cpu"
	// maxFrequencyCores 最多探测的核心序号
	maxFrequencyCores = 4096
)

// CPUFrequency 读取 cpu<N>/cpufreq/scaling_cur_freq（单位 kHz）
type CPUFrequency struct {
	fs   afero.Fs
	root string
}

// NewCPUFrequency fs 为 nil 时使用真实文件系统
func NewCPUFrequency(fs afero.Fs, root string) *CPUFrequency {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &CPUFrequency{fs: fs, root: root}
}

func (p *CPUFrequency) path(core int) string {
	return fmt.Sprintf("%s/cpu%d/cpufreq/scaling_cur_freq", p.root, core)
}

// Read 从 0 号核心开始依次读取，遇到不存在的文件结束
func (p *CPUFrequency) Read(_ context.Context) (FrequencyStats, error) {
	var (
		cores  []uint64
		failed int
	)
	for i := 0; i < maxFrequencyCores; i++ {
		raw, err := afero.ReadFile(p.fs, p.path(i))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			return FrequencyStats{}, fmt.Errorf("%w: read %s: %v", ErrIO, p.path(i), err)
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			logger.Warn("invalid cpu frequency value, using 0",
				zap.Int("core", i), zap.String("value", string(raw)), zap.Error(err))
			failed++
			cores = append(cores, 0)
			continue
		}
		cores = append(cores, khz*1000)
	}

	if len(cores) == 0 {
		return FrequencyStats{}, ErrNoSensorsFound
	}
	if failed == len(cores) {
		return FrequencyStats{}, fmt.Errorf("%w: no core reported a numeric frequency", ErrParse)
	}
	return FrequencyStats{Cores: cores}, nil
}
