// Package analyzer provides an embedded Go client for the news
// authenticity classifier: cleaned text goes through TF-IDF
// vectorization and a random-forest ensemble, trained from labeled CSV
// corpora and served from an in-process model.
//
//	client, err := analyzer.New(ctx, analyzer.WithFileStore("models"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if !client.Status(ctx).Trained {
//	    accuracy, err := client.Train(ctx)
//	    ...
//	}
//
//	verdict, err := client.Analyze(ctx, articleText)
//	fmt.Println(verdict.Prediction, verdict.Confidence)
//
// New restores a previously persisted model automatically, so trained
// state survives restarts through the file or Redis artifact store.
// Sentinel errors (ErrNotTrained, ErrTextTooShort, ...) are re-exported
// for errors.Is checks.
package analyzer
