// Package pagetrail provides an embedded Go client for the pagetrail
// browsing-history search engine backed by Redis with search modules.
//
// The client wires the full search pipeline in-process: vector
// retrieval, filtering, URL grouping, ranking and user memory all run
// against your own Redis instance, with no HTTP server in between.
// Strategy planning and answer verification are server-side concerns;
// the embedded client always plans a plain semantic strategy.
//
// Basic usage:
//
//	client, err := pagetrail.New(ctx,
//	    pagetrail.WithRedis("localhost:6379", ""),
//	    pagetrail.WithEmbedder(myEmbedder),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Search(ctx, "rust async tutorial", "")
//
// An Embedder is required: every query and every ingested chunk is
// vectorized through it.
package pagetrail
