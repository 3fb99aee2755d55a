// Package greenland enumerates every connected induced subgraph of a
// weighted graph whose total weight falls inside a band, and extracts
// the K combinations closest to a target value.
//
// # Quick Start
//
//	g := graph.New()
//	g.AddVertex("A", 10)
//	g.AddVertex("B", 12)
//	g.AddVertex("C", 8)
//	g.AddVertex("D", 15)
//	g.AddEdge("A", "B")
//	g.AddEdge("B", "C")
//	g.AddEdge("C", "D")
//
//	job, _ := greenland.NewJob(g, enum.Band{Lo: 20, Hi: 25}, 22, 2)
//	doc, _ := job.Run(context.Background())
//	for _, combo := range doc.Combinations {
//	    fmt.Println(combo.Members, combo.Sum, combo.Percent)
//	}
//
// # How It Works
//
// The graph is encoded once into adjacency bit-vectors. For each root
// vertex r, the enumerator walks every connected subset whose minimum
// vertex is r, pruning as soon as the running weight reaches the upper
// bound; an exclusion-set discipline guarantees each subset is produced
// exactly once. Because the search for root r never touches vertices
// below r, roots partition the result space and workers need no
// coordination: each one streams its records into a private blob-store
// sink. A merge step proves every root accounted for (and every sink
// checksum intact) before the bounded selector reduces the stream to
// the K records closest to the target, in O(K) memory.
//
// # Durability
//
// Sinks default to an in-memory store. For runs whose intermediate
// volume matters, plug in blobstore.NewLocalStore or the minio store:
//
//	store, _ := blobstore.NewLocalStore("./run")
//	job, _ := greenland.NewJob(g, band, target, k,
//	    greenland.WithStore(store),
//	    greenland.WithCompression(stream.CompressionZSTD),
//	    greenland.WithDocumentName("combinations.json"))
//
// On any worker failure the whole run aborts and partial sinks are
// discarded; results are all-or-nothing per run.
package greenland
