package rescache

// NewHTTPFetcherWithClient exposes newHTTPFetcherWithClient for tests.
var NewHTTPFetcherWithClient = newHTTPFetcherWithClient
