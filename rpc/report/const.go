package report

import (
	"github.com/agritrace-dev/agritrace-contract/contracts/report/reportconst"
)

const (
	// NotFoundError is returned if the requested report is missing.
	NotFoundError = reportconst.NotFoundError

	// ReentryError is returned on a nested recordReport invocation.
	ReentryError = reportconst.ReentryError
)
