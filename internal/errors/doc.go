// Package errors provides coded, categorised errors for rstore.
//
// Every failure a store swallows is classified into one of three codes
// before it is logged or handed to an OnError hook:
//
//   - R101 (transport): the request never produced a response
//   - R102 (status): the server answered with an unexpected status code
//   - R103 (decode): the response body was not the JSON we expected
//
// Configuration and CLI errors use the R12x and R13x ranges.
//
// # Usage
//
//	err := errors.New("R102").
//	    WithDetail("POST http://country.local/api/Country returned 500").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//	// ERROR R102: Unexpected response status
//	//
//	//   POST http://country.local/api/Country returned 500
package errors
