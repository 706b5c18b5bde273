package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mahesh-hegde/instante/app/common"
	"github.com/mahesh-hegde/instante/app/config"
	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/suggest"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

const apiVersion = "2.0.0"

type InstanteController struct {
	datasets    *dataset.DatasetService
	engine      *visualizer.Engine
	suggestions *suggest.SuggestionService
	conf        *config.InstanteConfig
}

func NewInstanteController(store dataset.Store, conf *config.InstanteConfig) *InstanteController {
	datasets := dataset.NewDatasetService(store, conf.UploadLimits())
	engine := visualizer.NewEngine(store)
	return &InstanteController{
		datasets:    datasets,
		engine:      engine,
		suggestions: suggest.NewSuggestionService(datasets, engine, suggest.HeuristicGenerator{}, conf.SuggestionTTL()),
		conf:        conf,
	}
}

type FileUploadResponse struct {
	FileID       string                           `json:"file_id"`
	Filename     string                           `json:"filename"`
	Columns      []string                         `json:"columns"`
	DataTypes    map[string]dataset.Kind          `json:"data_types"`
	Shape        [2]int                           `json:"shape"`
	SummaryStats map[string]dataset.ColumnSummary `json:"summary_stats"`
	Message      string                           `json:"message"`
}

type ChartDataResponse struct {
	ChartType visualizer.ChartType `json:"chart_type"`
	Data      []visualizer.Record  `json:"data"`
	Metadata  visualizer.Metadata  `json:"metadata"`
	Title     string               `json:"title"`
}

type FileInfoResponse struct {
	FileID    string                  `json:"file_id"`
	Shape     [2]int                  `json:"shape"`
	Columns   []string                `json:"columns"`
	DataTypes map[string]dataset.Kind `json:"data_types"`
	Summary   *dataset.Profile        `json:"summary"`
}

func (h *InstanteController) GetHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("Welcome to %s", h.conf.InstanceName),
		"version":     apiVersion,
		"chart_types": visualizer.ChartTypes(),
	})
}

func (h *InstanteController) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is running successfully",
	})
}

func (h *InstanteController) UploadFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return common.WithCause(http.StatusBadRequest, "A file is required in the \"file\" form field", err)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}

	res, err := h.datasets.Upload(c.Request().Context(), fh.Filename, content)
	if err != nil {
		return err
	}
	p := res.Profile
	slog.Info("file upload successful", "filename", fh.Filename, "file_id", res.ID)
	return c.JSON(http.StatusOK, FileUploadResponse{
		FileID:       res.ID,
		Filename:     p.Filename,
		Columns:      p.Columns,
		DataTypes:    p.DataTypes,
		Shape:        p.Shape,
		SummaryStats: p.SummaryStats,
		Message:      fmt.Sprintf("File processed successfully. %d rows, %d columns.", p.Shape[0], p.Shape[1]),
	})
}

func (h *InstanteController) AnalyzeFile(c echo.Context) error {
	analysis, err := h.suggestions.Analyze(c.Request().Context(), c.Param("fileId"))
	if err != nil {
		return common.WrapErrorForResponse(err, "Error analyzing file")
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *InstanteController) GetChartData(c echo.Context) error {
	var req visualizer.Request
	if err := c.Bind(&req); err != nil {
		return err
	}
	payload, err := h.engine.Compute(c.Request().Context(), req)
	if err != nil {
		return err
	}
	slog.Info("chart data generated", "chart_type", req.ChartType, "file_id", req.DatasetID)
	return c.JSON(http.StatusOK, ChartDataResponse{
		ChartType: req.ChartType,
		Data:      payload.Data,
		Metadata:  payload.Metadata,
		Title:     visualizer.Title(req.ChartType, req.Parameters),
	})
}

func (h *InstanteController) ExplainChart(c echo.Context) error {
	var req visualizer.Request
	if err := c.Bind(&req); err != nil {
		return err
	}
	exp, err := h.suggestions.Explain(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exp)
}

func (h *InstanteController) GetFileInfo(c echo.Context) error {
	id := c.Param("fileId")
	_, p, err := h.datasets.Info(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FileInfoResponse{
		FileID:    id,
		Shape:     p.Shape,
		Columns:   p.Columns,
		DataTypes: p.DataTypes,
		Summary:   p,
	})
}

func (h *InstanteController) DeleteFile(c echo.Context) error {
	id := c.Param("fileId")
	if err := h.datasets.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	h.suggestions.Invalidate(id)
	return c.NoContent(http.StatusNoContent)
}
