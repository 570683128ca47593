package f1

import "time"

const (
	defaultHTTPPort       = 8000
	defaultMetricPort     = 2121
	defaultRequestTimeout = 30
	shutDownTimeout       = 30 * time.Second
	readHeaderTimeout     = 5 * time.Second
)
