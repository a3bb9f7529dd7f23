package handler

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/adapter/dto"
	"github.com/meetinglens/meetinglens/internal/usecase/analysis"
	"github.com/meetinglens/meetinglens/internal/usecase/session"
	"github.com/meetinglens/meetinglens/pkg/config"
	"github.com/meetinglens/meetinglens/pkg/fileutil"
)

// AnalysisController serves the analysis pipeline endpoints.
type AnalysisController struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *analysis.Service
	sessions *session.Service
}

// NewAnalysisController creates the controller.
func NewAnalysisController(cfg *config.Config, logger *zap.Logger, pipeline *analysis.Service, sessions *session.Service) *AnalysisController {
	return &AnalysisController{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		sessions: sessions,
	}
}

// Analyze accepts an uploaded meeting recording, runs the full pipeline, and
// returns the finished report inline.
//
// @Summary Analyze a meeting recording
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video recording"
// @Success 200 {object} dto.AnalyzeResponse
// @Router /v1/analyze [post]
func (ctrl *AnalysisController) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	if !ctrl.cfg.ValidateAPIKey() {
		return HandleError(c, apperrors.ErrServiceMisconfigured("Transcription service"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(c, apperrors.ErrInvalidArgument("Missing file upload field 'file'"))
	}

	if fileHeader.Size == 0 {
		return HandleError(c, apperrors.ErrFileEmpty(fileHeader.Filename))
	}
	if fileHeader.Size > ctrl.cfg.Analysis.MaxFileSizeBytes {
		return HandleError(c, apperrors.ErrFileTooLarge(fileHeader.Size, ctrl.cfg.Analysis.MaxFileSizeBytes))
	}
	if !fileutil.IsSupportedFormat(fileHeader.Filename, ctrl.cfg.SupportedFormatsList()) {
		return HandleError(c, apperrors.ErrUnsupportedFormat(
			fileutil.Extension(fileHeader.Filename),
			ctrl.cfg.Analysis.SupportedFormats,
		))
	}

	uploadPath, cleanup, err := ctrl.saveUpload(fileHeader)
	if err != nil {
		ctrl.logger.Error("upload.save_failed", zap.Error(err))
		return HandleError(c, apperrors.ErrInternal(err))
	}
	defer cleanup()

	sess := ctrl.sessions.Create(ctx, fileHeader.Filename)

	report, err := ctrl.pipeline.Analyze(ctx, sess.ID, uploadPath, fileHeader.Filename)
	if err != nil {
		return HandleError(c, err)
	}

	return HandleSuccess(c, dto.AnalyzeResponse{
		SessionID: sess.ID,
		Report:    report,
	})
}

// saveUpload copies the multipart upload into a fresh scratch directory. The
// returned cleanup releases the directory; its failures are logged, not raised.
func (ctrl *AnalysisController) saveUpload(fileHeader *multipart.FileHeader) (string, func(), error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	dir, err := fileutil.CreateScratchDir("meetinglens-upload-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := fileutil.Cleanup(dir); err != nil {
			ctrl.logger.Warn("upload.cleanup_failed",
				zap.String("dir", dir),
				zap.Error(err),
			)
		}
	}

	dstPath := filepath.Join(dir, fileutil.SafeFilename(fileHeader.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		cleanup()
		return "", nil, err
	}
	return dstPath, cleanup, nil
}
