// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IngestService owns the acquisition-to-index pipeline and
// SearchService owns the retrieval funnel.
package services
