package metrics

import (
	"strconv"
	"time"

	"newspulse/internal/domain/entity"
)

// RecordHTTPRequest records an HTTP request with its metadata.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize int64, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordPortalCall records one portal backend call.
func RecordPortalCall(operation, outcome string, duration time.Duration) {
	PortalAPIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	PortalAPIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordScrapLookup records a scrap cache lookup result.
func RecordScrapLookup(result string) {
	ScrapCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordUnscrap records the result of an unscrap request.
func RecordUnscrap(result string) {
	UnscrapTotal.WithLabelValues(result).Inc()
}

// RecordBriefingSubmission records a briefing submission outcome.
func RecordBriefingSubmission(channel, outcome string) {
	BriefingSubmissionsTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordSummaryParsed records how many sections a parsed summary carried.
func RecordSummaryParsed(p entity.ParsedSummary) {
	n := 0
	for _, s := range []*string{p.Intro, p.Body, p.Conclusion} {
		if s != nil {
			n++
		}
	}
	label := "partial"
	switch n {
	case 0:
		label = "none"
	case 3:
		label = "full"
	}
	SummariesParsedTotal.WithLabelValues(label).Inc()
}
