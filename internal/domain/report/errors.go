package report

import "errors"

var (
	ErrInvalidRange       = errors.New("from date must not be after to date")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrExportRender       = errors.New("failed to render export")
	ErrUnknownPreset      = errors.New("unknown date range preset")
	ErrUnknownFormat      = errors.New("unknown export format")
)
