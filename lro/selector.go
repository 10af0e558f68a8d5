package lro

import (
	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
)

// ResultSelector derives an operation's value from its final-state response.
// An error from the selector fails the poll that ran it.
type ResultSelector[T any] func(*httpclient.Response) (T, error)

// JSONResult decodes the whole response body into T.
func JSONResult[T any]() ResultSelector[T] {
	return func(resp *httpclient.Response) (T, error) {
		var v T
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(resp.Body, &v); err != nil {
			return v, apperrors.Parse("decode operation result", err)
		}
		return v, nil
	}
}

// RawResult returns the final-state response itself.
func RawResult() ResultSelector[*httpclient.Response] {
	return func(resp *httpclient.Response) (*httpclient.Response, error) {
		return resp, nil
	}
}
