package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgerrors "campus-lms/backend/pkg/errors"
)

// ── 业务指标 ──

var (
	departmentImportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lms",
		Subsystem: "department_import",
		Name:      "total",
		Help:      "Department spreadsheet imports by result",
	}, []string{"result"})

	departmentImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lms",
		Subsystem: "department_import",
		Name:      "rows_total",
		Help:      "Department rows persisted by import, split into inserted and updated",
	}, []string{"op"})

	departmentExportRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lms",
		Subsystem: "department_export",
		Name:      "rows_total",
		Help:      "Department rows written to exported workbooks",
	})

	locationResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lms",
		Subsystem: "location",
		Name:      "resolve_total",
		Help:      "Location find-or-create lookups by outcome",
	}, []string{"outcome"})
)

// importResult 把导入结果折算为指标标签
func importResult(err error) string {
	if err == nil {
		return "success"
	}
	switch pkgerrors.Kind(err) {
	case pkgerrors.ErrMalformedRow:
		return "malformed_row"
	case pkgerrors.ErrEmptyWorkbook:
		return "empty_workbook"
	case pkgerrors.ErrInvalidInput:
		return "invalid_input"
	case pkgerrors.ErrAlreadyExists:
		return "already_exists"
	default:
		return "error"
	}
}

func recordImport(err error) {
	departmentImportTotal.WithLabelValues(importResult(err)).Inc()
}
