package transcode

import (
	"fmt"

	"video-service/internal/config"
)

// Rendition 转码输出档位定义
type Rendition struct {
	Height       int    // 输出高度，宽度按比例缩放
	VideoBitrate string // 视频码率，如 "2500k"
	AudioBitrate string // 音频码率，如 "128k"
}

// PlaylistName 该档位的HLS子播放列表文件名
func (r Rendition) PlaylistName() string {
	return fmt.Sprintf("stream_%dp.m3u8", r.Height)
}

// BuildPlan 根据配置生成转码档位列表，顺序与配置一致
func BuildPlan(cfg config.TranscodeConfig) []Rendition {
	plan := make([]Rendition, 0, len(cfg.Renditions))
	for _, r := range cfg.Renditions {
		plan = append(plan, Rendition{
			Height:       r.Height,
			VideoBitrate: r.VideoBitrate,
			AudioBitrate: r.AudioBitrate,
		})
	}
	return plan
}
