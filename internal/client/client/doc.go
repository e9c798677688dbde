// Package client talks to the file sharing backend over HTTP/JSON.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) covering Ping, Login,
//     ChangePassword, Upload and UpdateShare.
//  2. HTTPClient, the request interceptor: it attaches the bearer token and
//     a request id, decodes JSON replies and turns every failed response
//     into an *apierror.Error.
//  3. A Recorder hook for per-endpoint request metrics, with a Prometheus
//     implementation.
//
// # Error Handling
//
// Every failure is an *apierror.Error. Callers decide what to do with an
// error classified as session expiry; the client never changes session
// state itself and never retries.
package client
