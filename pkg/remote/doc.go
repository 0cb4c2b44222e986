// Package remote is a thin JSON client for a single REST resource endpoint.
//
// A Client is bound to one base URL and issues one request per call:
//
//	GET    {base}?{query}   decoded into the caller's value
//	POST   {base}           JSON body, raw *http.Response returned
//	PUT    {base}           JSON body, raw *http.Response returned
//	DELETE {base}/{id}      raw *http.Response returned
//
// The client does not retry, does not set a timeout of its own and catches
// nothing: transport errors from the underlying http.Client are returned
// unchanged, and interpreting status codes is the caller's job. Callers must
// close the body of every response they receive.
//
// Each request runs inside an OpenTelemetry span taken from the global
// tracer provider, and is reported to an optional Observer.
package remote
