// Package file provides file-based fetching of raw configuration data.
//
// A Fetcher reads the whole file once at construction time and caches
// the contents; Fetch returns a defensive copy on every call. Reads are
// synchronous and one-shot, with no streaming or partial reads.
//
// Usage:
//
//	fetcher, err := file.New("config.yaml")
//	if err != nil {
//		return err
//	}
//
//	data, err := fetcher.Fetch()
package file
