// Package boiledegg provides an embedded Go client for BOILED-Egg
// compound classification. It wires the same classification engine the
// HTTP service uses, without the HTTP layer.
//
// Descriptor computation (TPSA and WLogP) is delegated to an RDKit
// sidecar service, or to any custom DescriptorSource:
//
//	client, _ := boiledegg.New(ctx, boiledegg.WithRDKit("http://localhost:8081"))
//	defer client.Close()
//
//	res := client.Classify(ctx, "CCO")
//	if res.Status == boiledegg.StatusSuccess {
//	    fmt.Println(res.Results["BBB"].Value) // 1 = inside the yolk
//	}
//
// Batch classification runs compounds concurrently and preserves input
// order; per-compound failures never abort the batch:
//
//	results := client.ClassifyBatch(ctx, []string{"CCO", "c1ccccc1"},
//	    boiledegg.WithProperties("BBB", "GIA"))
package boiledegg
