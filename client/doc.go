// Package client assembles a ready-to-use REST client from a config.Config.
//
// It wires the logger, metrics and HTTP adapter together and exposes the two
// entry points that build on them:
//
//	c, err := client.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer c.Close(ctx)
//
//	op, err := client.BeginOperation(ctx, c, httpclient.Request{
//		Method: http.MethodPut,
//		Path:   "/widgets/1",
//		Body:   widget,
//	}, lro.JSONResult[Widget](), nil)
//	w, err := client.Wait(ctx, c, op)
//
//	for w, err := range client.List(c, "/widgets", paging.JSONProjector[Widget]()).All(ctx) {
//		...
//	}
package client
