// Package messaging publishes domain events to a broker without tying
// use-case code to a particular one. Kafka, NATS, NSQ and Google Pub/Sub are
// supported, plus a no-op driver for deployments that do not ship events.
package messaging
