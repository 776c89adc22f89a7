// Package enrich orchestrates batch metadata enrichment: for each scanned
// video file it searches the metadata provider, fuzzy-matches the results,
// fetches full details and images, and commits a complete record to the
// catalog. Items are processed one at a time; failures are isolated at the
// item boundary and the batch always runs to completion unless cancelled.
package enrich
