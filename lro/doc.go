// Package lro tracks long-running operations.
//
// A service that accepts work asynchronously answers with an
// Operation-Location header naming a status resource. CreateOperation turns
// that response into an Operation handle. Each Poll issues one GET to the
// status resource, reads its "status" property and classifies it through a
// StatusMap: unknown values keep the operation pending, failure values end it
// as failed, success values end it as succeeded after the result selector
// has produced the typed value from the final-state response.
//
//	op, err := lro.CreateOperation(adapter, resp, lro.JSONResult[Widget](), &lro.GetOperationOptions{
//	    FinalState: lro.FinalStateUseLocationHeader,
//	})
//	widget, err := op.WaitForCompletion(ctx, lro.DefaultPollingConfig())
//
// Every blocking method has an Async variant returning an *async.Future that
// runs the same code on its own goroutine.
package lro
