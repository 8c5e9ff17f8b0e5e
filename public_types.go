package client

import "github.com/wbstat/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Result shape
	Result      = types.Result
	Failure     = types.Failure
	FailureKind = types.FailureKind
	RawOutcome  = types.RawOutcome
	Verbosity   = types.Verbosity

	// Report rows, for Result.Decode
	Income       = types.Income
	Stock        = types.Stock
	Order        = types.Order
	Sale         = types.Sale
	ReportDetail = types.ReportDetail
	ExciseGood   = types.ExciseGood
)

const (
	KindRemote     = types.KindRemote
	KindTransport  = types.KindTransport
	KindValidation = types.KindValidation

	VerbosityNone    = types.VerbosityNone
	VerbosityURL     = types.VerbosityURL
	VerbosityHeaders = types.VerbosityHeaders
	VerbosityContent = types.VerbosityContent
)

// ParseVerbosity accepts none/url/headers/content or 0-3.
func ParseVerbosity(s string) (Verbosity, error) { return types.ParseVerbosity(s) }

// ErrNotSuccess is returned by Result.Decode on a failed Result.
var ErrNotSuccess = types.ErrNotSuccess
