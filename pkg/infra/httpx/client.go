package httpx

import "net/http"

// Client is the outbound transport used by the IAM and watsonx clients.
// *http.Client satisfies it, as does FastHTTPClient.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
