package transcode

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"video-service/internal/config"
)

// MasterPlaylistName HLS主播放列表文件名
const MasterPlaylistName = "master.m3u8"

// FFmpegEncoder 调用ffmpeg命令行完成HLS转码
type FFmpegEncoder struct {
	segmentSeconds int
	timeout        time.Duration
}

// NewFFmpegEncoder 创建新的ffmpeg编码器
func NewFFmpegEncoder(cfg config.TranscodeConfig) *FFmpegEncoder {
	return &FFmpegEncoder{
		segmentSeconds: cfg.SegmentSeconds,
		timeout:        time.Duration(cfg.TimeoutMinutes) * time.Minute,
	}
}

// buildArgs 构造单次ffmpeg调用的参数列表，每个档位追加一组输出
func (e *FFmpegEncoder) buildArgs(inputPath, outputDir string, plan []Rendition) []string {
	args := []string{
		"-y",
		"-i", inputPath,
		"-preset", "fast",
		"-g", "48",
		"-keyint_min", "48",
		"-sc_threshold", "0",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-ar", "48000",
		"-f", "hls",
		"-hls_time", strconv.Itoa(e.segmentSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", outputDir + "/%v_%03d.ts",
		"-master_pl_name", MasterPlaylistName,
	}

	for _, r := range plan {
		args = append(args,
			"-vf", fmt.Sprintf("scale=-2:%d", r.Height),
			"-b:v", r.VideoBitrate,
			"-b:a", r.AudioBitrate,
			outputDir+"/"+r.PlaylistName(),
		)
	}

	return args
}

// Encode 执行转码，输出写入outputDir
func (e *FFmpegEncoder) Encode(ctx context.Context, inputPath, outputDir string, plan []Rendition) error {
	if len(plan) == 0 {
		return fmt.Errorf("转码档位列表为空")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg", e.buildArgs(inputPath, outputDir, plan)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg执行失败: %w, 输出: %s", err, tail(output, 2048))
	}

	return nil
}

// tail 截取输出末尾，避免错误信息过长
func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[len(b)-n:])
}
