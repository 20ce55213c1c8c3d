package util

import (
	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
)

// Empty is an adapter result with no postings and no warning.
func Empty(src domain.Source) types.FetchResult {
	return types.FetchResult{Source: src, Postings: []domain.JobPosting{}}
}

// Fail returns an empty result carrying warning and logs it.
func Fail(log *zap.Logger, src domain.Source, warning string, fields ...zap.Field) types.FetchResult {
	if log != nil {
		log.Warn(warning, append([]zap.Field{zap.String("source", string(src))}, fields...)...)
	}
	res := Empty(src)
	res.Warning = warning
	return res
}

// Unsupported is the result for a country the source has no site for.
func Unsupported(log *zap.Logger, src domain.Source, country string) types.FetchResult {
	return Fail(log, src, "no "+string(src)+" domain found for "+country, zap.String("country", country))
}
