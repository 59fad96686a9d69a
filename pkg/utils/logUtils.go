package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"
)

const (
	buildInfoFilename = "build-info.yaml"
	buildInfoPrefix   = "build."
)

type BuildInfoMode int

const (
	BuildInfoNever BuildInfoMode = iota
	BuildInfoOnce
	BuildInfoAlways
)

type LoggerConfig struct {
	LogToFile        bool   `json:"log_to_file" yaml:"log_to_file"`
	Filename         string `json:"filename" yaml:"filename"`
	MaxSize          int    `json:"max_size" yaml:"max_size"`
	MaxAge           int    `json:"max_age" yaml:"max_age"`
	MaxBackups       int    `json:"max_backups" yaml:"max_backups"`
	LogLevel         string `json:"log_level" yaml:"log_level"`
	IncludeSrc       bool   `json:"include_src" yaml:"include_src"`
	CompressOldLogs  bool   `json:"compress_old_logs" yaml:"compress_old_logs"`
	IncludeBuildInfo string `json:"include_build_info" yaml:"include_build_info"` // never, always, once
}

type CustomHandler struct {
	slog.Handler
	buildInfoAttrs []slog.Attr
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.buildInfoAttrs...)
	return h.Handler.Handle(ctx, r)
}

const modulePath = "github.com/Pablocb541/PlayFlixV2-BackEnd"

// InitLogger installs the default JSON logger. With log_to_file set, records also go to a rotated file.
func InitLogger(conf LoggerConfig) {
	useBuildInfo := getBuildInfoMode(conf.IncludeBuildInfo)

	buildInfoAttrs := []slog.Attr{}
	var buildInfoErr error
	if useBuildInfo != BuildInfoNever {
		buildInfoAttrs, buildInfoErr = loadBuildInfoAsSlogAttrs(buildInfoFilename, buildInfoPrefix)
	}

	opts := &slog.HandlerOptions{
		Level:     logLevelFromString(conf.LogLevel),
		AddSource: conf.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
					source.Function = strings.Replace(source.Function, modulePath, "", -1)
				}
			}
			return a
		},
	}

	var w io.Writer = os.Stdout
	if conf.LogToFile && conf.Filename != "" {
		logTarget := &lumberjack.Logger{
			Filename:   conf.Filename,
			MaxSize:    conf.MaxSize,         // megabytes
			MaxAge:     conf.MaxAge,          // days
			Compress:   conf.CompressOldLogs, // compress old files
			MaxBackups: conf.MaxBackups,
		}
		w = io.MultiWriter(os.Stdout, logTarget)
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if useBuildInfo == BuildInfoAlways && len(buildInfoAttrs) > 0 {
		handler = &CustomHandler{Handler: handler, buildInfoAttrs: buildInfoAttrs}
	}
	slog.SetDefault(slog.New(handler))

	if buildInfoErr != nil {
		slog.Warn("build info not available", slog.String("error", buildInfoErr.Error()))
		return
	}

	if useBuildInfo == BuildInfoOnce {
		attrs := make([]any, len(buildInfoAttrs))
		for i, attr := range buildInfoAttrs {
			attrs[i] = attr
		}
		slog.Info("Build info", attrs...)
	}
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getBuildInfoMode(includeBuildInfo string) BuildInfoMode {
	switch includeBuildInfo {
	case "never":
		return BuildInfoNever
	case "always":
		return BuildInfoAlways
	case "once":
		return BuildInfoOnce
	default:
		return BuildInfoNever
	}
}

func loadBuildInfoAsSlogAttrs(filename, prefix string) ([]slog.Attr, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading build info file: %w", err)
	}

	buildInfo := make(map[string]string)
	if err := yaml.Unmarshal(data, &buildInfo); err != nil {
		return nil, fmt.Errorf("parsing build info: %w", err)
	}

	keys := make([]string, 0, len(buildInfo))
	for k := range buildInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(buildInfo))
	for _, k := range keys {
		attrs = append(attrs, slog.String(prefix+k, buildInfo[k]))
	}
	return attrs, nil
}
