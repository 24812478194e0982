// Package itemsearch embeds the hybrid inventory search engine in a Go
// program, talking to Redis 8+ (Query Engine) directly instead of going
// through the HTTP API.
//
// A search expands the query with synonyms, ranks it through the full-text
// index and falls back to typo-tolerant fuzzy matching over the filtered
// items when the index returns too little:
//
//	client, _ := itemsearch.New(ctx,
//	    itemsearch.WithRedis("localhost:6379", ""),
//	    itemsearch.WithKeyPrefix("inv:"),
//	)
//	defer client.Close()
//
//	_ = client.Synonyms().Upsert(ctx, itemsearch.SynonymGroup{
//	    Canonical: "wrench",
//	    Synonyms:  []string{"spanner", "adjustable wrench"},
//	    Category:  "tools",
//	})
//	_ = client.Items().Upsert(ctx, itemsearch.Item{ID: "t-1", Name: "Adjustable Wrench"})
//
//	res, _ := client.Search(ctx, "spaner", itemsearch.Query{Locations: []string{"garage"}})
//	for _, hit := range res.Items {
//	    fmt.Println(hit.Item.Name, hit.Score, hit.Source)
//	}
package itemsearch
