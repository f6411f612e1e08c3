// Package source acquires the raw game data files the pipeline consumes.
//
// A source reference is either a local file path, an http(s) URL or an
// s3://bucket/key object reference. The Fetcher resolves all three
// uniformly, so commands do not care where a game data snapshot lives.
//
// # Client Interface
//
// The Client interface abstracts the object storage provider (AWS S3 or
// self-hosted MinIO), making it easy to mock storage interactions for unit
// testing (as seen in core/source/mocks).
//
// # Usage
//
//	f := source.NewFetcher(cfg.Source)
//	raw, err := f.Fetch(ctx, "s3://gamedata/aces/shop.blk")
package source
