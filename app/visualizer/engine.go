package visualizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mahesh-hegde/instante/app/dataset"
)

// Engine turns a stored dataset and chart parameters into chart data. It
// holds no state besides the store it reads from.
type Engine struct {
	store dataset.Store
}

func NewEngine(store dataset.Store) *Engine {
	return &Engine{store: store}
}

// Compute looks up the dataset named by req and builds its chart payload.
func (e *Engine) Compute(ctx context.Context, req Request) (*Payload, error) {
	if !Supported(req.ChartType) {
		return nil, &UnsupportedChartTypeError{ChartType: req.ChartType}
	}
	ds, err := e.store.Get(ctx, req.DatasetID)
	if errors.Is(err, dataset.ErrNotFound) {
		return nil, &NotFoundError{DatasetID: req.DatasetID, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", req.DatasetID, err)
	}
	payload, err := Build(req.ChartType, req.Parameters, ds)
	if err != nil {
		slog.Warn("chart data failed", "file_id", req.DatasetID, "chart_type", req.ChartType, "error", err)
		return nil, err
	}
	return payload, nil
}

// Build validates params and computes the payload for ds. It is a pure
// function of its arguments. Either the whole payload is returned or an
// error is.
func Build(ct ChartType, params Parameters, ds *dataset.Dataset) (payload *Payload, err error) {
	c, err := prepare(ct, params, ds)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			payload, err = nil, &ComputationError{ChartType: ct, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	data, meta, err := registry[ct].build(c)
	if err != nil {
		var verr *ValidationError
		var cerr *ComputationError
		if errors.As(err, &verr) || errors.As(err, &cerr) {
			return nil, err
		}
		return nil, &ComputationError{ChartType: ct, Err: err}
	}
	if data == nil {
		data = []Record{}
	}
	if meta == nil {
		meta = Metadata{}
	}
	meta.set("chart_type", string(ct)).set("total_records", len(data))
	return &Payload{Data: data, Metadata: meta}, nil
}
