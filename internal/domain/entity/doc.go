// Package entity defines the domain objects of the news portal gateway.
// It contains scrap records, parsed summaries, briefing schedule results and
// the explicit viewer identity that every member-scoped operation receives.
package entity
