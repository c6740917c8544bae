package ioplot

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrNothingToPlot means no result had a finite odds ratio and interval.
var ErrNothingToPlot = errors.New("nothing to plot")

func NothingToPlotError() error {
	msg := "No features with a finite odds ratio, plot is not created"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NothingToPlotError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), ErrNothingToPlot),
	}
}

func PlotError(err error) error {
	msg := "Cannot create forest plot"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PlotError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot draw plot: %w", fn.Name(), err),
	}
}
