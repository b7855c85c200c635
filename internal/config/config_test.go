package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8080"
database:
  host: "localhost"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// 未配置的项填充默认值
	require.Equal(t, 24, cfg.JWT.ExpiryHours)
	require.Equal(t, int64(2*1024*1024*1024), cfg.Upload.MaxFileSize)
	require.Equal(t, "video-events", cfg.Kafka.Topic)
	require.Equal(t, "video-worker", cfg.Kafka.GroupID)
	require.Equal(t, 10, cfg.Transcode.SegmentSeconds)
	require.Equal(t, 30, cfg.Transcode.TimeoutMinutes)
	require.Equal(t, 60, cfg.Transcode.StaleAfterMin)
	require.Equal(t, 10, cfg.Transcode.SweepIntervalMin)

	// 默认两档输出，顺序固定
	require.Len(t, cfg.Transcode.Renditions, 2)
	require.Equal(t, 360, cfg.Transcode.Renditions[0].Height)
	require.Equal(t, "800k", cfg.Transcode.Renditions[0].VideoBitrate)
	require.Equal(t, 720, cfg.Transcode.Renditions[1].Height)
	require.Equal(t, "2500k", cfg.Transcode.Renditions[1].VideoBitrate)
}

func TestLoadConfig_RenditionOverride(t *testing.T) {
	path := writeConfigFile(t, `
transcode:
  segmentseconds: 6
  renditions:
    - height: 480
      videobitrate: "1200k"
      audiobitrate: "96k"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 6, cfg.Transcode.SegmentSeconds)
	require.Len(t, cfg.Transcode.Renditions, 1)
	require.Equal(t, 480, cfg.Transcode.Renditions[0].Height)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	require.Error(t, err)
}
