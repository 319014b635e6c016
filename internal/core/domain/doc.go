// Package domain contains the core types for the podseek transcript
// retrieval pipeline: timed transcript units, indexed chunks, ingestion
// outcomes and search results. Types here have no dependencies on
// adapters or external services.
package domain
