package analysis

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/pkg/config"
)

// Runner executes an external command. Abstracted so tests can substitute the
// ffmpeg/ffprobe binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// decodeStrategy is one attempt in the decode chain. Strategies are tried in
// order; the first success short-circuits.
type decodeStrategy struct {
	name string
	args func(inputPath, outputPath string, sampleRate, maxDuration int) []string
}

var decodeStrategies = []decodeStrategy{
	{
		// Primary path: full decode with loudness normalization.
		name: "ffmpeg",
		args: func(in, out string, rate, maxDur int) []string {
			return []string{
				"-y",
				"-i", in,
				"-vn",
				"-ac", "1",
				"-ar", strconv.Itoa(rate),
				"-af", "loudnorm",
				"-t", strconv.Itoa(maxDur),
				"-f", "wav",
				out,
			}
		},
	},
	{
		// Fallback path: permissive decode for damaged containers.
		name: "ffmpeg-permissive",
		args: func(in, out string, rate, maxDur int) []string {
			return []string{
				"-y",
				"-err_detect", "ignore_err",
				"-fflags", "+genpts+igndts",
				"-i", in,
				"-vn",
				"-ac", "1",
				"-ar", strconv.Itoa(rate),
				"-t", strconv.Itoa(maxDur),
				"-f", "wav",
				out,
			}
		},
	},
}

// Normalizer converts arbitrary input audio into canonical form: mono, target
// sample rate, loudness-normalized, capped at the configured maximum duration.
type Normalizer struct {
	cfg    *config.AnalysisConfig
	logger *zap.Logger
	runner Runner
}

// NewNormalizer constructs a Normalizer with the real exec runner.
func NewNormalizer(cfg *config.AnalysisConfig, logger *zap.Logger) *Normalizer {
	return &Normalizer{cfg: cfg, logger: logger, runner: ExecRunner{}}
}

// NewNormalizerWithRunner constructs a Normalizer with a custom runner.
func NewNormalizerWithRunner(cfg *config.AnalysisConfig, logger *zap.Logger, runner Runner) *Normalizer {
	return &Normalizer{cfg: cfg, logger: logger, runner: runner}
}

// Normalize converts the input file into a canonical waveform inside
// scratchDir and returns its path. Normalization is best-effort: when every
// decode strategy fails, the original input path is returned unmodified and
// downstream stages must tolerate non-canonical audio. Only unrecoverable
// input conditions (missing, empty, above the size ceiling) return an error.
func (n *Normalizer) Normalize(ctx context.Context, inputPath, scratchDir string) (string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrFileMissing(inputPath)
		}
		return "", fmt.Errorf("failed to stat input: %w", err)
	}
	if info.Size() == 0 {
		return "", apperrors.ErrFileEmpty(inputPath)
	}
	if info.Size() > n.cfg.MaxFileSizeBytes {
		return "", apperrors.ErrFileTooLarge(info.Size(), n.cfg.MaxFileSizeBytes)
	}

	// Record the truncation event before decoding: the decode itself applies
	// the duration cap, discarding trailing audio. Lossy but documented.
	if dur, err := n.ProbeDuration(ctx, inputPath); err == nil {
		if dur > float64(n.cfg.MaxAudioDuration) {
			n.logger.Warn("audio.truncated",
				zap.String("input", inputPath),
				zap.Float64("duration_seconds", dur),
				zap.Int("max_duration_seconds", n.cfg.MaxAudioDuration),
			)
		}
	}

	outputPath := filepath.Join(scratchDir, "canonical.wav")

	for _, strategy := range decodeStrategies {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		args := strategy.args(inputPath, outputPath, n.cfg.TargetSampleRate, n.cfg.MaxAudioDuration)
		if err := n.runner.Run(ctx, "ffmpeg", args...); err != nil {
			n.logger.Warn("audio.decode_failed",
				zap.String("strategy", strategy.name),
				zap.String("input", inputPath),
				zap.Error(err),
			)
			continue
		}

		// An empty decode result counts as a strategy failure.
		out, err := os.Stat(outputPath)
		if err != nil || out.Size() == 0 {
			n.logger.Warn("audio.decode_empty",
				zap.String("strategy", strategy.name),
				zap.String("input", inputPath),
			)
			continue
		}

		n.logger.Info("audio.normalized",
			zap.String("strategy", strategy.name),
			zap.String("output", outputPath),
			zap.Int64("size_bytes", out.Size()),
		)
		return outputPath, nil
	}

	// Last resort: hand the original file to transcription rather than
	// aborting the pipeline on a preprocessing failure.
	n.logger.Error("audio.normalization_failed_using_original",
		zap.String("input", inputPath),
	)
	return inputPath, nil
}

// ProbeDuration returns the container duration in seconds via ffprobe.
func (n *Normalizer) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := n.runner.Output(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable ffprobe output: %w", err)
	}
	return dur, nil
}
