package helpers

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ErrElasticsearchDown is returned by PingES when the cluster answers with an error status.
var ErrElasticsearchDown = errors.New("elasticsearch ping failed")

// NewESClient builds the client behind profile search, with optional basic auth.
// It returns nil without error when no address is configured; search is then disabled.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     addrs,
		Username:      username,
		Password:      password,
		MaxRetries:    2,
		RetryOnStatus: []int{502, 503, 504},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// PingES checks that the cluster is reachable. A nil client is not an error.
func PingES(ctx context.Context, es *elasticsearch.Client) error {
	if es == nil {
		return nil
	}
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return ErrElasticsearchDown
	}
	return nil
}
