// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines the Prometheus collectors exported on /metrics.

Collectors are registered on the default registry at init:

  - onewave_http_requests_total{method,route,status}
  - onewave_http_request_duration_seconds{method,route}
  - onewave_feed_likes_total{action}
  - onewave_analysis_duration_seconds{scorer,outcome}
  - onewave_application_decisions_total{decision}

The route label is the ServeMux pattern (for example "POST /api/feeds/{id}/likes"),
never the raw path, so label cardinality stays bounded.
*/
package metrics
