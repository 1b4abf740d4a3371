package main

import (
	"io"
	"log/slog"
)

type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
