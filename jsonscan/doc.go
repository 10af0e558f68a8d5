// Package jsonscan extracts named top-level fields from a JSON object body
// without building a document tree.
//
// It drives a json-iterator Iterator over the body: matching properties are
// read, everything else is skipped structurally. Array elements are captured
// as RawSpan values holding the element's exact source bytes, so each item can
// later be handed to a typed decoder once, when it is actually consumed.
//
//	status, err := jsonscan.ReadStatus(body, "status")
//
//	page, err := jsonscan.ReadItemsAndNextLink(body, "value", "nextLink")
//	for _, item := range page.Items {
//	    var v Widget
//	    if err := item.Decode(&v); err != nil { ... }
//	}
package jsonscan
